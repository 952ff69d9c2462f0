// Package ringbuffer implements the bounded sliding window shared by the
// send and receive sides of an ALTA session: a fixed-capacity array of
// slots indexed by id modulo Capacity, a lowest id that only ever
// advances, and a pop operation that drains a contiguous run of
// entries that have reached a target state.
package ringbuffer

import (
	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

// Capacity is the number of live slots held by a ring buffer at once:
// twice the span a full round trip of hashes needs to settle, so that a
// packet's predecessors and successors are never evicted before they can
// be used.
const Capacity = 2 * (graph.A*graph.P + 1)

// forwardCursorStart is the identifier the forward cursor begins
// walking from: the canonical offset table's one residue (3 mod 5) with
// no predecessors of its own, so it is always safe to forward-hash
// first.
const forwardCursorStart types.PacketID = 3

// core is the shared bookkeeping behind both SendBuffer and RecvBuffer.
// It holds no opinion about what "ready" means; callers configure that
// via popTarget.
type core struct {
	slots         []*packet.Entry
	lowestID      types.PacketID
	forwardCursor types.PacketID
	popTarget     packet.State
}

func newCore(popTarget packet.State) *core {
	return &core{
		slots:         make([]*packet.Entry, Capacity),
		forwardCursor: forwardCursorStart,
		popTarget:     popTarget,
	}
}

// inWindow reports whether id currently falls within [lowestID,
// lowestID+Capacity).
func (c *core) inWindow(id types.PacketID) bool {
	return id >= c.lowestID && id < c.lowestID+Capacity
}

// getOrCreate returns the entry for id, allocating it on first access.
// It fails with ErrOutOfBoundID if id has already scrolled out of the
// window or sits beyond its far edge.
func (c *core) getOrCreate(id types.PacketID) (*packet.Entry, error) {
	if !c.inWindow(id) {
		return nil, ErrOutOfBoundID
	}
	idx := id % Capacity
	e := c.slots[idx]
	if e == nil || e.ID != id {
		e = packet.New(id)
		c.slots[idx] = e
	}
	return e, nil
}

// occupied counts the non-empty slots currently held.
func (c *core) occupied() int {
	n := 0
	for _, e := range c.slots {
		if e != nil {
			n++
		}
	}
	return n
}

// entryAt returns the entry at id if one is present, without creating
// one. It returns nil if id is out of the window or the slot is empty
// or holds a stale entry.
func (c *core) entryAt(id types.PacketID) *packet.Entry {
	if !c.inWindow(id) {
		return nil
	}
	e := c.slots[id%Capacity]
	if e == nil || e.ID != id {
		return nil
	}
	return e
}

// popReadyInSequence drains and returns every entry starting at
// lowestID whose state equals popTarget, stopping at the first gap or
// state mismatch: it breaks rather than skipping past a non-match, so
// lowestID advances by exactly the number of entries returned.
func (c *core) popReadyInSequence() []*packet.Entry {
	var out []*packet.Entry
	for i := 0; i < Capacity; i++ {
		idx := c.lowestID % Capacity
		e := c.slots[idx]
		if e == nil || e.ID != c.lowestID || e.State != c.popTarget {
			break
		}
		out = append(out, e)
		c.slots[idx] = nil
		c.lowestID++
	}
	return out
}

// advanceForwardCursor returns the current forward cursor value and
// steps it to the next one, per the canonical residue table: starting
// from forwardCursorStart, each step moves by an offset that depends on
// cursor mod P (+8, -1, +2, -1, -3 for residues 0 to 4), saturating at
// 0. The walk visits every identifier exactly once.
func (c *core) advanceForwardCursor() types.PacketID {
	cur := c.forwardCursor
	c.forwardCursor = nextCursor(cur)
	return cur
}

func nextCursor(cur types.PacketID) types.PacketID {
	switch cur % graph.P {
	case 0:
		return cur + 8
	case 1:
		return saturatingSub(cur, 1)
	case 2:
		return cur + 2
	case 3:
		return saturatingSub(cur, 1)
	default: // 4
		return saturatingSub(cur, 3)
	}
}

func saturatingSub(a, b types.PacketID) types.PacketID {
	if b > a {
		return 0
	}
	return a - b
}
