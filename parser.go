package parse

import "sync/atomic"

// Parser is a uniformly shaped recognizer: one transform from a state to a
// state. Construction (Literal, SequenceOf, ...) gives each Parser a
// stable identity distinct from any other Parser built the same way —
// structurally equal grammars are never identified with each other.
//
// The interface is unexported-method-sealed: only this package can supply
// conforming implementations, the same discipline the teacher's node
// interface uses for its grammar AST.
type Parser interface {
	transform(s *State) *State
	id() uint64
	name() string
}

var nextID uint64

// node is the embeddable identity+label every concrete parser type carries.
type node struct {
	nodeID uint64
	label  string
}

func newNode(label string) node {
	return node{nodeID: atomic.AddUint64(&nextID, 1), label: label}
}

func (n *node) id() uint64    { return n.nodeID }
func (n *node) name() string  { return n.label }

// CacheMap is the packrat memo table shared by every nested transform of a
// single parse: parser identity -> offset -> cached state. It is opaque to
// callers outside this package and the stream package that drives it;
// consumers must not rely on its contents, only on the states it produces.
type CacheMap struct {
	entries  map[cacheKey]*State
	inFlight map[cacheKey]bool
}

type cacheKey struct {
	parser uint64
	offset int
}

// NewCacheMap returns a fresh, empty memo table. Every top-level parse
// (a call to ParseString, or one Driver's whole streaming lifetime) owns
// exactly one.
func NewCacheMap() *CacheMap {
	return &CacheMap{entries: map[cacheKey]*State{}, inFlight: map[cacheKey]bool{}}
}

// Apply runs p once over input using cache as its memo table, from a fresh
// index of zero. Re-invoking Apply with the same cache and a growing
// input.Value (as the streaming driver does) is safe and efficient: the
// packrat memo guarantees each (parser, offset) pair is computed at most
// once across all re-attempts for a given snapshot.
func Apply(p Parser, input Snapshot, cache *CacheMap) *State {
	s := &State{Input: input, Index: 0, Status: Complete, cache: cache}
	return run(p, s)
}

// run is the memoized entry point every combinator uses to invoke a child
// parser; it is also what Apply calls for the top-level parser.
func run(p Parser, s *State) *State {
	if s.Status == Error {
		return s
	}

	key := cacheKey{parser: p.id(), offset: s.Index}
	if cached, ok := s.cache.entries[key]; ok && reusable(cached, s) {
		return rebase(cached, s)
	}

	if s.cache.inFlight[key] {
		return s.fail(Errorf(Mismatch, s.Index, "possible left recursion in %s at offset %d", p.name(), s.Index))
	}
	s.cache.inFlight[key] = true
	result := p.transform(s)
	delete(s.cache.inFlight, key)

	s.cache.entries[key] = result
	return result
}

// reusable implements the cache-reusability rule (§4.1): a COMPLETE entry
// is always reusable; a PARTIAL entry only while the live snapshot is
// byte-for-byte identical to the one that produced it; an ERROR entry
// unless it is an UNEXPECTED_END_OF_INPUT raised against a non-final
// snapshot, which later chunks may invalidate.
func reusable(cached, live *State) bool {
	switch cached.Status {
	case Complete:
		return true
	case Partial:
		return cached.Input.Value == live.Input.Value && cached.Input.Done == live.Input.Done
	case Error:
		return !isControlEOI(cached)
	default:
		return false
	}
}
