// Package stream drives the core parse package against input that may
// arrive all at once or as a chunked stream of unknown total length.
//
// This is the boundary layer the spec calls out as external collaborators
// rather than hard core: ParseChunks and ParseAsyncChunks are thin wrappers
// around Driver, which owns the accumulating input buffer and the one memo
// table shared across a whole parse; ParseString applies the parser once,
// directly, with a fresh memo table.
package stream

import (
	"context"
	"strings"

	"github.com/ka-fuachie/parse-lib"
)

// Driver re-runs a top-level parser against a growing input buffer,
// suppressing states that make no observable progress and emitting every
// other state, exactly as §4.4 specifies. Re-parsing from offset zero on
// every chunk is safe and cheap: the packrat memo table guarantees each
// (parser, offset) pair is computed at most once for a given snapshot.
type Driver struct {
	parser parse.Parser
	cache  *parse.CacheMap
	buffer strings.Builder
	last   *parse.State
	tracer func(chunk string, s *parse.State)
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithTrace registers a callback invoked after every Feed/Finish call
// (including suppressed ones) with the chunk just appended and the state
// produced — useful the same way the teacher's Trace option is, to watch
// a parse unfold chunk by chunk.
func WithTrace(fn func(chunk string, s *parse.State)) Option {
	return func(d *Driver) { d.tracer = fn }
}

// NewDriver constructs a Driver for parser with a fresh, empty memo table.
func NewDriver(parser parse.Parser, opts ...Option) *Driver {
	d := &Driver{parser: parser, cache: parse.NewCacheMap()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed appends chunk to the accumulated input and re-runs the parser from
// offset zero over the whole buffer, with done=false. It returns the
// produced state and whether it was emitted (ok); a state is suppressed,
// per §4.4, if it is still asking for more input (an UNEXPECTED_END_OF_INPUT
// error) or if it is identical in input value, index and status to the
// last emitted state.
func (d *Driver) Feed(chunk string) (s *parse.State, ok bool) {
	d.buffer.WriteString(chunk)
	s = parse.Apply(d.parser, parse.Snapshot{Value: d.buffer.String(), Done: false}, d.cache)
	if d.tracer != nil {
		d.tracer(chunk, s)
	}
	if d.suppress(s) {
		return s, false
	}
	d.last = s
	return s, true
}

// Finish runs one final transform with done=true over the fully
// accumulated buffer and emits it unconditionally: this is the only
// emission that may carry a verdict that depends on true end-of-input,
// e.g. EndOfInput at the tail.
func (d *Driver) Finish() *parse.State {
	s := parse.Apply(d.parser, parse.Snapshot{Value: d.buffer.String(), Done: true}, d.cache)
	if d.tracer != nil {
		d.tracer("", s)
	}
	d.last = s
	return s
}

func (d *Driver) suppress(s *parse.State) bool {
	if s.Status == parse.Error && s.Err != nil && s.Err.Kind == parse.UnexpectedEndOfInput {
		return true
	}
	if d.last != nil && d.last.Input.Value == s.Input.Value && d.last.Index == s.Index && d.last.Status == s.Status {
		return true
	}
	return false
}

// Terminal reports whether s is a stopping point for the driver: a
// COMPLETE match, or a genuine (non-EOI) error.
func Terminal(s *parse.State) bool {
	if s.Status == parse.Complete {
		return true
	}
	return s.Status == parse.Error && !(s.Err != nil && s.Err.Kind == parse.UnexpectedEndOfInput)
}

// ParseString runs parser once against the whole string s with done=true
// from the outset. A PARTIAL result is impossible here: an
// UNEXPECTED_END_OF_INPUT error cannot resurface as PARTIAL once done.
func ParseString(parser parse.Parser, s string) *parse.State {
	return parse.Apply(parser, parse.Snapshot{Value: s, Done: true}, parse.NewCacheMap())
}

// ParseChunks runs parser against a finite, already-available sequence of
// chunks, returning every emitted state in order; the final element is
// always the state produced with done=true, unless an earlier emission was
// already terminal, in which case the driver stops consuming further
// chunks per §4.4 step 5.
func ParseChunks(parser parse.Parser, chunks []string, opts ...Option) []*parse.State {
	d := NewDriver(parser, opts...)
	var out []*parse.State
	for _, c := range chunks {
		s, ok := d.Feed(c)
		if !ok {
			continue
		}
		out = append(out, s)
		if Terminal(s) {
			return out
		}
	}
	out = append(out, d.Finish())
	return out
}

// ParseAsyncChunks is ParseChunks for a chunk source that may itself be
// asynchronous: chunks arrives as a channel, out is closed once the parse
// reaches a terminal state or chunks is closed and the final done=true
// flush has been emitted, and ctx cancellation stops the driver early
// without emitting anything further.
func ParseAsyncChunks(ctx context.Context, parser parse.Parser, chunks <-chan string, opts ...Option) <-chan *parse.State {
	out := make(chan *parse.State)
	go func() {
		defer close(out)
		d := NewDriver(parser, opts...)
		for {
			select {
			case <-ctx.Done():
				return
			case c, open := <-chunks:
				if !open {
					select {
					case out <- d.Finish():
					case <-ctx.Done():
					}
					return
				}
				s, ok := d.Feed(c)
				if !ok {
					continue
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
				if Terminal(s) {
					return
				}
			}
		}
	}()
	return out
}
