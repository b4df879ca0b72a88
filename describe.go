package parse

import (
	"fmt"
	"strings"
)

// Describe renders p's combinator tree as a single-line grammar
// expression, the same shape the teacher's printer.go produces for its
// own node tree: one case per kind, cycle-guarded so a Lazy fixpoint
// doesn't recurse forever.
func Describe(p Parser) string {
	seen := map[uint64]bool{}
	return describe(seen, p)
}

func describe(seen map[uint64]bool, p Parser) string {
	if p == nil {
		return "<nil>"
	}
	if seen[p.id()] {
		return "<" + p.name() + ">"
	}
	seen[p.id()] = true

	switch n := p.(type) {
	case *literalParser:
		return n.name()
	case *anyCharParser:
		return "."
	case *charFromParser:
		return n.name()
	case *endOfInputParser:
		return "$"
	case *sequenceParser:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = describe(seen, c)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *oneOfParser:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = describe(seen, c)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case *zeroOrMoreParser:
		return "{ " + describe(seen, n.child) + " }"
	case *oneOrMoreParser:
		return "{ " + describe(seen, n.child) + " }+"
	case *optionalParser:
		return "[ " + describe(seen, n.child) + " ]"
	case *followedByParser:
		return "&(" + describe(seen, n.child) + ")"
	case *notFollowedByParser:
		return "!(" + describe(seen, n.child) + ")"
	case *lazyParser:
		return describe(seen, n.resolve())
	default:
		return fmt.Sprintf("?%s", p.name())
	}
}
