package ringbuffer

import (
	"errors"

	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/log"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

// RecvBuffer drives entries through the receive pipeline: insert,
// authenticate via signature or an already-authenticated successor,
// then pop once Authenticated.
type RecvBuffer struct {
	core     *core
	hasher   packet.Hasher
	verifier packet.Verifier
	logger   *log.Logger
}

// NewRecvBuffer returns an empty RecvBuffer. hasher recomputes the
// total hash of an entry to check it against the authentication graph;
// verifier checks a carried signature against that hash. The buffer
// logs nowhere until SetLogger attaches a non-discard logger.
func NewRecvBuffer(hasher packet.Hasher, verifier packet.Verifier) *RecvBuffer {
	return &RecvBuffer{
		core:     newCore(packet.Authenticated),
		hasher:   hasher,
		verifier: verifier,
		logger:   log.NewDiscard(),
	}
}

// SetLogger replaces the buffer's logger. A nil argument is ignored, so
// callers can pass config.Config.Logger straight through.
func (r *RecvBuffer) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Insert places entry into the window and attempts to authenticate it
// immediately. Re-inserting the same identifier is idempotent. It fails
// with ErrOutOfBoundID if the identifier falls outside the window.
func (r *RecvBuffer) Insert(entry *packet.Entry) error {
	if !r.core.inWindow(entry.ID) {
		return ErrOutOfBoundID
	}
	idx := entry.ID % Capacity
	if existing := r.core.slots[idx]; existing != nil && existing.ID == entry.ID {
		return nil
	}

	entry.State = packet.NotReady
	r.core.slots[idx] = entry
	return r.Authenticate(entry.ID)
}

// Authenticate runs the authentication state machine on the entry at
// id: a signed entry is authenticated (or rejected) directly; an
// unsigned one borrows trust from an already-authenticated successor
// whose stored hashes include this entry's total hash. A freshly
// authenticated entry recurses into its own predecessors, since they
// may now be unlockable too.
func (r *RecvBuffer) Authenticate(id types.PacketID) error {
	e := r.core.entryAt(id)
	if e == nil {
		return nil
	}
	if e.State == packet.Authenticated {
		return nil
	}
	if e.State == packet.BadAuthentication {
		return packet.ErrBadAuthentication
	}

	if e.Signature != nil {
		digest, err := e.ComputeTotalHash(r.hasher)
		if err != nil {
			return err
		}
		if r.verifier.Verify(*e.Signature, digest) {
			e.State = packet.Authenticated
		} else {
			e.State = packet.BadAuthentication
			r.logger.Warn("bad authentication", "id", id, "reason", "signature verification failed")
		}
	} else {
		h, err := e.ComputeTotalHash(r.hasher)
		if err != nil {
			return err
		}
		for _, sid := range graph.Successors(id) {
			successor := r.core.entryAt(sid)
			if successor == nil {
				continue
			}
			switch cmpErr := successor.CompareHash(h); {
			case cmpErr == nil:
				e.State = packet.Authenticated
			case errors.Is(cmpErr, packet.ErrBadAuthentication):
				e.State = packet.BadAuthentication
				r.logger.Warn("bad authentication", "id", id, "reason", "hash mismatch against authenticated successor", "successor", sid)
			default: // ErrNotAuthenticated: successor isn't authenticated yet, try the next one
				continue
			}
			break
		}
	}

	switch e.State {
	case packet.Authenticated:
		for _, p := range e.Predecessors {
			if err := r.Authenticate(p); err != nil {
				return err
			}
		}
	case packet.BadAuthentication:
		return packet.ErrBadAuthentication
	}
	return nil
}

// PopReadyInSequence drains and returns every Authenticated entry
// starting at the lowest buffered identifier, stopping at the first gap
// or not-yet-authenticated entry.
func (r *RecvBuffer) PopReadyInSequence() []*packet.Entry {
	return r.core.popReadyInSequence()
}

// LowestID returns the smallest identifier still held in the window.
func (r *RecvBuffer) LowestID() types.PacketID {
	return r.core.lowestID
}

// Occupied returns the number of slots currently holding an entry.
func (r *RecvBuffer) Occupied() int {
	return r.core.occupied()
}

// CountState returns the number of buffered entries in the given state.
func (r *RecvBuffer) CountState(state packet.State) int {
	n := 0
	for _, e := range r.core.slots {
		if e != nil && e.State == state {
			n++
		}
	}
	return n
}
