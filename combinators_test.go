package parse_test

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"

	"github.com/ka-fuachie/parse-lib"
)

func TestSequenceOfWhole(t *testing.T) {
	p := parse.SequenceOf(parse.Literal("a"), parse.Literal("b"))
	s := parse.Apply(p, whole("ab"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status, repr.String(s))
	require.Equal(t, []any{"a", "b"}, s.Result)
	require.Equal(t, 2, s.Index)
}

func TestSequenceOfStreamingPartial(t *testing.T) {
	p := parse.SequenceOf(parse.Literal("Hello"), parse.Literal(", "), parse.Literal("world"), parse.Literal("!"))
	cache := parse.NewCacheMap()

	s := parse.Apply(p, streaming("Hello"), cache)
	require.Equal(t, parse.Partial, s.Status)
	require.Equal(t, []any{"Hello", nil, nil, nil}, s.Result)
	require.Equal(t, 5, s.Index)

	s = parse.Apply(p, whole("Hello, world!"), cache)
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, []any{"Hello", ", ", "world", "!"}, s.Result)
	require.Equal(t, 13, s.Index)
}

func TestSequenceOfGenuineFailurePropagates(t *testing.T) {
	p := parse.SequenceOf(parse.Literal("a"), parse.Literal("b"))
	s := parse.Apply(p, whole("ax"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.Mismatch, s.Err.Kind)
}

func TestOneOfCommitsToFirstSuccess(t *testing.T) {
	p := parse.OneOf(parse.Literal("Hello"), parse.Literal("Hi"))
	cache := parse.NewCacheMap()

	s := parse.Apply(p, streaming("Hell"), cache)
	require.Equal(t, parse.Partial, s.Status)
	require.Equal(t, "Hell", s.Result)
	require.Equal(t, 4, s.Index)

	s = parse.Apply(p, whole("Hello, world!"), cache)
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, "Hello", s.Result)
	require.Equal(t, 5, s.Index)
}

func TestOneOfTriesNextOnGenuineFailure(t *testing.T) {
	p := parse.OneOf(parse.Literal("Hello"), parse.Literal("Hi"))
	s := parse.Apply(p, whole("Hi there"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, "Hi", s.Result)
}

func TestOneOfAllFailReturnsFirstError(t *testing.T) {
	p := parse.OneOf(parse.Literal("Hello"), parse.Literal("Hi"))
	s := parse.Apply(p, whole("Nope"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.Mismatch, s.Err.Kind)
}

func TestZeroOrMoreGreedyAndEmpty(t *testing.T) {
	p := parse.ZeroOrMore(parse.Literal("Ha"))
	s := parse.Apply(p, whole("HaHaHa!"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, []any{"Ha", "Ha", "Ha"}, s.Result)
	require.Equal(t, 6, s.Index)

	s = parse.Apply(p, whole(""), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, []any{}, s.Result)
	require.Equal(t, 0, s.Index)
	require.Nil(t, s.Err)
}

func TestZeroOrMoreStopsOnZeroWidthSuccess(t *testing.T) {
	p := parse.ZeroOrMore(parse.Optional(parse.Literal("x")))
	s := parse.Apply(p, whole("xxy"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	// Optional("x") matches "x" twice (advancing), then would match
	// nothing at all without advancing on "y" — that zero-width success
	// must stop the loop rather than diverge.
	require.Equal(t, []any{"x", "x"}, s.Result)
	require.Equal(t, 2, s.Index)
}

func TestOneOrMoreRequiresAtLeastOne(t *testing.T) {
	p := parse.OneOrMore(parse.Literal("Ha"))
	s := parse.Apply(p, whole("!"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.EmptyRepetition, s.Err.Kind)

	s = parse.Apply(p, whole("HaHa!"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, []any{"Ha", "Ha"}, s.Result)
}

func TestOptional(t *testing.T) {
	p := parse.Optional(parse.Literal("x"))
	s := parse.Apply(p, whole("x"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, "x", s.Result)

	s = parse.Apply(p, whole("y"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Nil(t, s.Result)
	require.Equal(t, 0, s.Index)
}

func TestFollowedByDoesNotConsume(t *testing.T) {
	p := parse.SequenceOf(parse.FollowedBy(parse.Literal("ab")), parse.Literal("a"))
	s := parse.Apply(p, whole("ab"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)
	require.Equal(t, []any{"ab", "a"}, s.Result)
	require.Equal(t, 1, s.Index)
}

func TestFollowedByFailurePropagatesError(t *testing.T) {
	s := parse.Apply(parse.FollowedBy(parse.Literal("ab")), whole("xy"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.Mismatch, s.Err.Kind)
	require.Equal(t, 0, s.Index)
}

func TestNotFollowedBy(t *testing.T) {
	p := parse.SequenceOf(parse.NotFollowedBy(parse.Literal("b")), parse.Literal("a"))
	s := parse.Apply(p, whole("ac"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status)

	s = parse.Apply(parse.NotFollowedBy(parse.Literal("a")), whole("abc"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.NegativeLookaheadViolation, s.Err.Kind)
}

func TestNotFollowedByAwaitsMoreInputOnPartial(t *testing.T) {
	s := parse.Apply(parse.NotFollowedBy(parse.Literal("ab")), streaming("a"), parse.NewCacheMap())
	require.Equal(t, parse.Error, s.Status)
	require.Equal(t, parse.UnexpectedEndOfInput, s.Err.Kind)
}

func TestLazyFixpointNestedArray(t *testing.T) {
	var array parse.Parser
	arrayValue := parse.OneOf(parse.Lazy(func() parse.Parser { return array }), parse.CharFrom(parse.Span('0', '9')))
	array = parse.Lazy(func() parse.Parser {
		return parse.SequenceOf(parse.Literal("["), arrayValue, parse.Literal("]"))
	})

	s := parse.Apply(array, whole("[[3]]"), parse.NewCacheMap())
	require.Equal(t, parse.Complete, s.Status, repr.String(s))
	require.Equal(t, 5, s.Index)
	require.Equal(t, []any{"[", []any{"[", "3", "]"}, "]"}, s.Result)
}

func TestDeterminismAcrossFreshCaches(t *testing.T) {
	p := parse.SequenceOf(parse.Literal("the"), parse.Literal(" "), parse.OneOf(parse.Literal("cat"), parse.Literal("dog")))
	a := parse.Apply(p, whole("the dog"), parse.NewCacheMap())
	b := parse.Apply(p, whole("the dog"), parse.NewCacheMap())
	require.Equal(t, a.Status, b.Status)
	require.Equal(t, a.Result, b.Result)
	require.Equal(t, a.Index, b.Index)
}
