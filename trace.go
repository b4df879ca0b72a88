package parse

import (
	"fmt"
	"io"
)

// tracingParser wraps another parser to log every invocation to w, the
// same wrap-and-forward shape as the teacher's trace.go: indent per
// nesting level, one line per node visited.
type tracingParser struct {
	node
	child  Parser
	w      io.Writer
	indent int
}

// Trace wraps p (and, recursively, every combinator reachable from it
// without passing through a Lazy node) so that each transform call logs its
// offset, status and name to w. A Lazy node is wrapped itself, but the
// parser its thunk returns is not descended into. It
// supplements the spec's boundary contracts with the same debugging aid
// the teacher offers via its Trace option.
func Trace(w io.Writer, p Parser) Parser {
	return injectTrace(w, 0, p)
}

func injectTrace(w io.Writer, indent int, p Parser) Parser {
	switch n := p.(type) {
	case *sequenceParser:
		for i, c := range n.children {
			n.children[i] = injectTrace(w, indent+2, c)
		}
	case *oneOfParser:
		for i, c := range n.children {
			n.children[i] = injectTrace(w, indent+2, c)
		}
	case *zeroOrMoreParser:
		n.child = injectTrace(w, indent+2, n.child)
	case *oneOrMoreParser:
		n.child = injectTrace(w, indent+2, n.child)
	case *optionalParser:
		n.child = injectTrace(w, indent+2, n.child)
	case *followedByParser:
		n.child = injectTrace(w, indent+2, n.child)
	case *notFollowedByParser:
		n.child = injectTrace(w, indent+2, n.child)
	}
	return &tracingParser{node: newNode("trace(" + p.name() + ")"), child: p, w: w, indent: indent}
}

func (t *tracingParser) transform(s *State) *State {
	out := run(t.child, s)
	indent := ""
	for i := 0; i < t.indent; i++ {
		indent += " "
	}
	fmt.Fprintf(t.w, "%s%-24s offset=%-4d -> %s offset=%d\n", indent, t.child.name(), s.Index, out.Status, out.Index)
	return out
}
