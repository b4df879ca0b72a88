package parse

import (
	"sync"

	"golang.org/x/exp/slices"
)

// sequenceParser applies its children left to right, threading state.
type sequenceParser struct {
	node
	children []Parser
}

// SequenceOf returns a parser that applies parsers in order, succeeding
// with the slice of their results only if every one of them succeeds.
func SequenceOf(parsers ...Parser) Parser {
	return &sequenceParser{node: newNode("sequenceOf"), children: slices.Clone(parsers)}
}

func (p *sequenceParser) transform(s *State) *State {
	n := len(p.children)
	results := make([]any, n)
	cur := s
	for i, child := range p.children {
		next := run(child, cur)
		if next.Status == Error {
			if isControlEOI(next) {
				// Synthetic partial anchored at the state before the
				// failing child ran, carrying the full-length results
				// array: slots already matched are filled in, the rest
				// (including this one) stay nil.
				return cur.partial(cur.Index, results)
			}
			return next
		}
		results[i] = next.Result
		cur = next
	}
	// The final child's state, status included, with the results array
	// in place of its own result: a PARTIAL last child leaves the whole
	// sequence PARTIAL.
	return cur.derive(cur.Index, cur.Status, results, nil)
}

// oneOfParser is ordered choice: first success wins, first non-EOI error
// is remembered in case every alternative fails.
type oneOfParser struct {
	node
	children []Parser
}

// OneOf returns a parser that tries parsers in order and commits to the
// first that succeeds (PEG semantics — no alternative is retried once a
// later one has been attempted).
func OneOf(parsers ...Parser) Parser {
	return &oneOfParser{node: newNode("oneOf"), children: slices.Clone(parsers)}
}

func (p *oneOfParser) transform(s *State) *State {
	var firstFailure *State
	for _, child := range p.children {
		next := run(child, s)
		if next.Status != Error {
			return next
		}
		if isControlEOI(next) {
			// The decision can't be made yet; the caller needs more input.
			return next
		}
		if firstFailure == nil {
			firstFailure = next
		}
	}
	if firstFailure != nil {
		return firstFailure
	}
	return s.fail(Errorf(Mismatch, s.Index, "oneOf: no alternatives given"))
}

// zeroOrMoreParser collects successes of child greedily.
type zeroOrMoreParser struct {
	node
	child Parser
}

// ZeroOrMore returns a parser that applies p as many times as it succeeds,
// zero or more, always completing (never failing) once input stops
// matching.
func ZeroOrMore(p Parser) Parser {
	return &zeroOrMoreParser{node: newNode("zeroOrMore"), child: p}
}

func (z *zeroOrMoreParser) transform(s *State) *State {
	results := []any{}
	cur := s
	for {
		next := run(z.child, cur)
		if next.Status == Error {
			if isControlEOI(next) {
				return cur.partial(cur.Index, append([]any(nil), results...))
			}
			break
		}
		if next.Index == cur.Index {
			// Zero-width success: stop, or Kleene star would diverge.
			break
		}
		results = append(results, next.Result)
		cur = next
	}
	return s.complete(cur.Index, results)
}

// oneOrMoreParser is zeroOrMore with a floor of one match.
type oneOrMoreParser struct {
	node
	child Parser
}

// OneOrMore returns a parser like ZeroOrMore but failing with
// EmptyRepetition if p never matches.
func OneOrMore(p Parser) Parser {
	return &oneOrMoreParser{node: newNode("oneOrMore"), child: p}
}

func (o *oneOrMoreParser) transform(s *State) *State {
	results := []any{}
	cur := s
	for {
		next := run(o.child, cur)
		if next.Status == Error {
			if isControlEOI(next) {
				return cur.partial(cur.Index, append([]any(nil), results...))
			}
			if len(results) == 0 {
				return s.fail(Errorf(EmptyRepetition, s.Index, "%s matched zero times", o.child.name()))
			}
			break
		}
		if next.Index == cur.Index {
			break
		}
		results = append(results, next.Result)
		cur = next
	}
	return s.complete(cur.Index, results)
}

// optionalParser tries child, succeeding with a nil result if it fails.
type optionalParser struct {
	node
	child Parser
}

// Optional returns a parser that matches p if possible, or matches
// nothing (with a nil result) if p genuinely fails.
func Optional(p Parser) Parser {
	return &optionalParser{node: newNode("optional"), child: p}
}

func (o *optionalParser) transform(s *State) *State {
	next := run(o.child, s)
	if next.Status == Error {
		if isControlEOI(next) {
			return next
		}
		return s.complete(s.Index, nil)
	}
	return next
}

// followedByParser is positive lookahead: it never consumes input.
type followedByParser struct {
	node
	child Parser
}

// FollowedBy returns a parser that succeeds iff p would succeed at the
// current offset, without advancing past it.
func FollowedBy(p Parser) Parser {
	return &followedByParser{node: newNode("followedBy"), child: p}
}

func (f *followedByParser) transform(s *State) *State {
	next := run(f.child, s)
	if next.Status == Error {
		return s.derive(s.Index, Error, nil, next.Err)
	}
	// Verbatim propagation of the child's status and result at the entry
	// offset: the child may have advanced internally, but the lookahead
	// wrapper discards that advance by design.
	return s.derive(s.Index, next.Status, next.Result, nil)
}

// notFollowedByParser is negative lookahead: it never consumes input.
type notFollowedByParser struct {
	node
	child Parser
}

// NotFollowedBy returns a parser that succeeds with a nil result iff p
// would genuinely fail at the current offset.
func NotFollowedBy(p Parser) Parser {
	return &notFollowedByParser{node: newNode("notFollowedBy"), child: p}
}

func (n *notFollowedByParser) transform(s *State) *State {
	next := run(n.child, s)
	if next.Status == Complete {
		return s.fail(Errorf(NegativeLookaheadViolation, s.Index, "%s unexpectedly matched", n.child.name()))
	}
	if next.Status == Partial || isControlEOI(next) {
		return s.fail(Errorf(UnexpectedEndOfInput, s.Index, "cannot decide negative lookahead on %s yet", n.child.name()))
	}
	return s.complete(s.Index, nil)
}

// lazyParser defers constructing its body until first use, enabling
// cyclic grammar graphs (a rule that references itself or a rule above it).
type lazyParser struct {
	node
	thunk  func() Parser
	once   sync.Once
	target Parser
}

// Lazy returns a parser that evaluates thunk on first use and reuses the
// result for the lifetime of the returned Parser. This is how a grammar
// can reference itself: declare a variable, capture it by reference in
// thunk, and assign the Lazy parser to it before thunk is ever invoked.
func Lazy(thunk func() Parser) Parser {
	return &lazyParser{node: newNode("lazy"), thunk: thunk}
}

func (l *lazyParser) resolve() Parser {
	l.once.Do(func() { l.target = l.thunk() })
	return l.target
}

func (l *lazyParser) transform(s *State) *State {
	return run(l.resolve(), s)
}
