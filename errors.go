package parse

import (
	"fmt"

	"github.com/ka-fuachie/parse-lib/internal/messages"
)

// Kind is the closed set of error kinds a parser can raise.
type Kind int

const (
	// UnexpectedEndOfInput means a parser needed more characters than the
	// current snapshot offered. Over a non-final snapshot this is a
	// control signal for "more input, please"; over a final snapshot it
	// is a genuine user error (§7).
	UnexpectedEndOfInput Kind = iota
	// Mismatch means a recognizer saw characters that did not satisfy it.
	Mismatch
	// EmptyRepetition means OneOrMore matched zero times.
	EmptyRepetition
	// NegativeLookaheadViolation means a NotFollowedBy predicate saw its
	// forbidden parser succeed.
	NegativeLookaheadViolation
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "UNEXPECTED_END_OF_INPUT"
	case Mismatch:
		return "MISMATCH"
	case EmptyRepetition:
		return "EMPTY_REPETITION"
	case NegativeLookaheadViolation:
		return "NEGATIVE_LOOKAHEAD_VIOLATION"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) messageID() string {
	switch k {
	case UnexpectedEndOfInput:
		return messages.UnexpectedEndOfInput
	case EmptyRepetition:
		return messages.EmptyRepetition
	case NegativeLookaheadViolation:
		return messages.NegativeLookaheadViolated
	default:
		return messages.Mismatch
	}
}

// ParseError is the descriptor carried by a State whose Status is Error. It
// carries a byte Offset rather than line/column (source-position
// reporting beyond a byte offset is out of scope).
type ParseError struct {
	Kind   Kind
	Offset int
	detail string
}

func (e *ParseError) Error() string {
	return messages.Format(e.Kind.messageID(), e.Offset, e.detail)
}

// Errorf builds a *ParseError of the given kind at offset, formatting detail
// the way fmt.Sprintf does.
func Errorf(kind Kind, offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, detail: fmt.Sprintf(format, args...)}
}
