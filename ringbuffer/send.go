package ringbuffer

import (
	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/log"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

// SendBuffer drives entries through the send pipeline: insert in strict
// sequence, collect predecessor hashes, forward the total hash to
// successors, then pop once an entry is ReadyToSend.
type SendBuffer struct {
	core      *core
	hasher    packet.Hasher
	latestID  types.PacketID
	hasLatest bool
	logger    *log.Logger
}

// NewSendBuffer returns an empty SendBuffer. hasher computes the total
// hash an entry forwards to its successors. The buffer logs nowhere
// until SetLogger attaches a non-discard logger.
func NewSendBuffer(hasher packet.Hasher) *SendBuffer {
	return &SendBuffer{
		core:   newCore(packet.ReadyToSend),
		hasher: hasher,
		logger: log.NewDiscard(),
	}
}

// SetLogger replaces the buffer's logger. A nil argument is ignored, so
// callers can pass config.Config.Logger straight through.
func (s *SendBuffer) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// InsertInSequence copies entry.Payload into the slot for entry.ID. It
// fails with ErrOutOfBoundID if the identifier has scrolled out of the
// window, and ErrIllegalInsert unless entry.ID is exactly one past the
// last identifier inserted (or zero, on an otherwise empty buffer).
func (s *SendBuffer) InsertInSequence(entry *packet.Entry) error {
	if !s.core.inWindow(entry.ID) {
		return ErrOutOfBoundID
	}

	var want types.PacketID
	if s.hasLatest {
		want = s.latestID + 1
	}
	if entry.ID != want {
		return ErrIllegalInsert
	}

	slot, err := s.core.getOrCreate(entry.ID)
	if err != nil {
		return err
	}
	slot.Payload = entry.Payload
	s.latestID = entry.ID
	s.hasLatest = true
	return nil
}

// ForwardHash computes the total hash of the entry at id and appends it
// to the Hashes of every one of its successors, then marks the entry
// ReadyToSend. It is a no-op returning nil if the entry is already
// ReadyToSend, ErrMissingHash if the entry has not yet collected a
// hash from each of its own predecessors, and ErrOutOfBoundID if id has
// no corresponding entry or forwarding would push a successor beyond
// the window.
func (s *SendBuffer) ForwardHash(id types.PacketID) error {
	e := s.core.entryAt(id)
	if e == nil {
		return ErrOutOfBoundID
	}
	if e.State == packet.ReadyToSend {
		return nil
	}
	if len(e.Hashes) != len(e.Predecessors) {
		return ErrMissingHash
	}

	successors := graph.Successors(id)
	succEntries := make([]*packet.Entry, len(successors))
	for i, sid := range successors {
		se, err := s.core.getOrCreate(sid)
		if err != nil {
			return err
		}
		succEntries[i] = se
	}

	h, err := e.ComputeTotalHash(s.hasher)
	if err != nil {
		return err
	}

	e.State = packet.ReadyToSend
	for _, se := range succEntries {
		se.Hashes = append(se.Hashes, h)
	}
	s.logger.Debug("forwarded hash", "id", id, "successors", len(succEntries))
	return nil
}

// NextForwardID returns the next identifier the forward cursor hints at
// and advances the cursor. The hint tends to visit an entry only after
// its predecessors have already forwarded, but callers must still
// tolerate ErrMissingHash from ForwardHash.
func (s *SendBuffer) NextForwardID() types.PacketID {
	return s.core.advanceForwardCursor()
}

// PopReadyInSequence drains and returns every ReadyToSend entry
// starting at the lowest buffered identifier, stopping at the first gap
// or not-yet-ready entry.
func (s *SendBuffer) PopReadyInSequence() []*packet.Entry {
	return s.core.popReadyInSequence()
}

// EntryAt returns the entry at id if one is buffered, or nil if id is
// out of the window or has no corresponding entry yet.
func (s *SendBuffer) EntryAt(id types.PacketID) *packet.Entry {
	return s.core.entryAt(id)
}

// LowestID returns the smallest identifier still held in the window.
func (s *SendBuffer) LowestID() types.PacketID {
	return s.core.lowestID
}

// Occupied returns the number of slots currently holding an entry.
func (s *SendBuffer) Occupied() int {
	return s.core.occupied()
}

// CountState returns the number of buffered entries in the given state.
func (s *SendBuffer) CountState(state packet.State) int {
	n := 0
	for _, e := range s.core.slots {
		if e != nil && e.State == state {
			n++
		}
	}
	return n
}
