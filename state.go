package parse

// Snapshot is an immutable view of the input seen so far. Done is true
// exactly when no further characters will ever arrive; in whole-string
// parses it is true from the outset.
//
// The alphabet is the host representation of Value, a UTF-8 byte string:
// indexing and prefix-matching work on bytes, not decoded runes or
// grapheme clusters (Unicode-grapheme awareness is explicitly out of
// scope).
type Snapshot struct {
	Value string
	Done  bool
}

// Status is the three-valued verdict a parser leaves in a State.
type Status int

const (
	// Complete means the parser matched and will never be asked to
	// reconsider: its result depends only on bytes already seen.
	Complete Status = iota
	// Partial means the parser made progress but needs more input before
	// it can commit to a verdict. Only possible while Input.Done is false.
	Partial
	// Error means the parser failed to match, or is waiting on more input
	// in a way the caller must interpret (see ParseError.Kind).
	Error
)

func (s Status) String() string {
	switch s {
	case Complete:
		return "COMPLETE"
	case Partial:
		return "PARTIAL"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// State is the immutable value threaded through every parser transform.
//
// Invariants: 0 <= Index <= len(Input.Value); Status == Error iff Err is
// non-nil, in which case Result is nil; Status == Partial only while
// Input.Done is false.
type State struct {
	Input  Snapshot
	Index  int
	Status Status
	Result any
	Err    *ParseError

	cache *CacheMap
}

// derive builds a new state sharing this state's cache, used by parsers to
// report a verdict without hand-threading the cache pointer everywhere.
func (s *State) derive(index int, status Status, result any, err *ParseError) *State {
	return &State{Input: s.Input, Index: index, Status: status, Result: result, Err: err, cache: s.cache}
}

// complete reports a successful, terminal match ending at index.
func (s *State) complete(index int, result any) *State {
	return s.derive(index, Complete, result, nil)
}

// partial reports progress without a verdict, ending at index.
func (s *State) partial(index int, result any) *State {
	return s.derive(index, Partial, result, nil)
}

// fail reports a failure at the current index, per the error-short-circuit
// rule (errors never advance Index).
func (s *State) fail(err *ParseError) *State {
	return s.derive(s.Index, Error, nil, err)
}

// rebase copies a cached entry onto the live call: the cached Index,
// Status, Result and Err are kept, while Input and the memo table track
// the state that requested the lookup.
func rebase(cached, live *State) *State {
	out := *cached
	out.Input = live.Input
	out.cache = live.cache
	return &out
}

// isControlEOI reports whether s is an UNEXPECTED_END_OF_INPUT error
// raised against a non-final snapshot: a request for more input, not a
// grammar failure.
func isControlEOI(s *State) bool {
	return s.Status == Error && s.Err != nil && s.Err.Kind == UnexpectedEndOfInput && !s.Input.Done
}
