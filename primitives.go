package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// preview renders the first few bytes of s for an error message, the way
// the teacher's lexer.Error formats an offending token.
func preview(s string) string {
	const max = 16
	if len(s) > max {
		s = s[:max] + "…"
	}
	return strconv.Quote(s)
}

// literalParser matches an exact byte sequence.
type literalParser struct {
	node
	text string
}

// Literal returns a parser that matches the exact byte sequence text
// starting at the current offset. text must be non-empty.
func Literal(text string) Parser {
	return &literalParser{node: newNode(fmt.Sprintf("literal(%s)", strconv.Quote(text))), text: text}
}

func (p *literalParser) transform(s *State) *State {
	remaining := s.Input.Value[s.Index:]
	if remaining == "" {
		return s.fail(Errorf(UnexpectedEndOfInput, s.Index, "expected %s", strconv.Quote(p.text)))
	}
	if !s.Input.Done && len(remaining) < len(p.text) && strings.HasPrefix(p.text, remaining) {
		return s.partial(s.Index+len(remaining), remaining)
	}
	if strings.HasPrefix(remaining, p.text) {
		return s.complete(s.Index+len(p.text), p.text)
	}
	return s.fail(Errorf(Mismatch, s.Index, "expected %s, got %s", strconv.Quote(p.text), preview(remaining)))
}

// anyCharParser consumes exactly one byte.
type anyCharParser struct{ node }

// AnyChar returns a parser that consumes and returns a single byte of
// input, regardless of what it is.
func AnyChar() Parser {
	return &anyCharParser{node: newNode("anyChar")}
}

func (p *anyCharParser) transform(s *State) *State {
	if s.Index >= len(s.Input.Value) {
		return s.fail(Errorf(UnexpectedEndOfInput, s.Index, "expected any character"))
	}
	return s.complete(s.Index+1, string(s.Input.Value[s.Index]))
}

// RuneSet is a single member of the heterogeneous list CharFrom accepts:
// either one character or an inclusive range of them.
type RuneSet struct {
	lo, hi byte
}

// Char is a single-character member of a CharFrom set.
func Char(r byte) RuneSet { return RuneSet{lo: r, hi: r} }

// Span is an inclusive character-range member of a CharFrom set. An
// unordered pair is normalized by swapping lo and hi.
func Span(lo, hi byte) RuneSet {
	if lo > hi {
		lo, hi = hi, lo
	}
	return RuneSet{lo: lo, hi: hi}
}

func (r RuneSet) matches(b byte) bool { return b >= r.lo && b <= r.hi }

func (r RuneSet) String() string {
	if r.lo == r.hi {
		return strconv.QuoteRune(rune(r.lo))
	}
	return fmt.Sprintf("%s-%s", strconv.QuoteRune(rune(r.lo)), strconv.QuoteRune(rune(r.hi)))
}

// charFromParser matches one byte against a heterogeneous set of
// characters and ranges.
type charFromParser struct {
	node
	set []RuneSet
}

// CharFrom returns a parser that matches a single byte of input against
// set, succeeding if it equals any singleton or falls within any range.
func CharFrom(set ...RuneSet) Parser {
	labels := make([]string, len(set))
	for i, r := range set {
		labels[i] = r.String()
	}
	return &charFromParser{node: newNode(fmt.Sprintf("charFrom(%s)", strings.Join(labels, ","))), set: set}
}

func (p *charFromParser) transform(s *State) *State {
	if s.Index >= len(s.Input.Value) {
		return s.fail(Errorf(UnexpectedEndOfInput, s.Index, "expected one of %s", p.name()))
	}
	b := s.Input.Value[s.Index]
	for _, r := range p.set {
		if r.matches(b) {
			return s.complete(s.Index+1, string(b))
		}
	}
	return s.fail(Errorf(Mismatch, s.Index, "expected one of %s, got %s", p.name(), preview(string(b))))
}

// endOfInputParser succeeds only at the true end of the whole input.
type endOfInputParser struct{ node }

// EndOfInput returns a parser that succeeds only once the input is
// exhausted and no further chunks will arrive.
func EndOfInput() Parser {
	return &endOfInputParser{node: newNode("endOfInput")}
}

func (p *endOfInputParser) transform(s *State) *State {
	if s.Index < len(s.Input.Value) {
		return s.fail(Errorf(Mismatch, s.Index, "expected end of input, got %s", preview(s.Input.Value[s.Index:])))
	}
	if !s.Input.Done {
		return s.fail(Errorf(UnexpectedEndOfInput, s.Index, "expected end of input"))
	}
	return s.complete(s.Index, nil)
}
