package ringbuffer

import "errors"

// Ring buffer errors.
var (
	// ErrOutOfBoundID is returned when an identifier falls outside
	// [lowestID, lowestID+Capacity), or when forwarding a hash would
	// push a successor beyond the window.
	ErrOutOfBoundID = errors.New("ringbuffer: id out of bound")

	// ErrMissingHash is returned by ForwardHash when the entry does
	// not yet have all of its predecessor hashes. Expected and
	// transient: callers retry once predecessors have forwarded.
	ErrMissingHash = errors.New("ringbuffer: missing predecessor hash")

	// ErrIllegalInsert is returned by InsertInSequence when the
	// identifier does not immediately follow the last inserted one.
	ErrIllegalInsert = errors.New("ringbuffer: insert violates sequential ordering")

	// ErrBufferFull would signal that accepting an entry requires
	// evicting an unresolved earlier identifier still held in the
	// window. Since each slot maps to exactly one identifier in
	// [lowestID, lowestID+Capacity) and that case is already reported
	// as ErrOutOfBoundID, no distinct occupant-eviction case arises
	// under this one-window-per-capacity layout; the sentinel is kept
	// to match the error taxonomy's BufferFull entry.
	ErrBufferFull = errors.New("ringbuffer: buffer full of unresolved entries")
)
