// Package packet defines Entry, the per-packet record that carries a
// packet through its lifecycle on either the send or the receive side of
// an ALTA session, and the collaborator interfaces (Hasher, Verifier)
// that the core delegates cryptographic work to.
package packet

import (
	"errors"
	"fmt"

	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/types"
)

// Entry-level errors. OutOfBoundId, MissingHash, IllegalInsert and
// BufferFull live in package ringbuffer, since they describe buffer
// operations rather than the entry itself.
var (
	// ErrNotAuthenticated signals that CompareHash was invoked on an
	// entry whose own state is not yet Authenticated. It is used
	// internally by the receive-side authentication walk and is not
	// necessarily user-visible.
	ErrNotAuthenticated = errors.New("packet: entry is not authenticated")

	// ErrBadAuthentication signals that an authenticated parent's
	// stored hashes do not contain the child's total hash.
	ErrBadAuthentication = errors.New("packet: hash mismatch against authenticated parent")
)

// State is the lifecycle state of an Entry. Transitions are monotonic:
// NotReady -> ReadyToSend (send side), or NotReady -> Authenticated /
// NotReady -> BadAuthentication (receive side). There is no backward
// transition.
type State uint8

const (
	NotReady State = iota
	ReadyToSend
	Authenticated
	BadAuthentication
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case NotReady:
		return "not_ready"
	case ReadyToSend:
		return "ready_to_send"
	case Authenticated:
		return "authenticated"
	case BadAuthentication:
		return "bad_authentication"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Hasher computes the total hash of a packet: a 32-byte digest over the
// payload and the predecessor hashes embedded in it, in order. The
// concrete hash function is an external collaborator; see package
// crypto for a default Keccak-256 implementation.
type Hasher interface {
	TotalHash(payload []byte, childHashes []types.Hash) (types.Hash, error)
}

// Verifier checks a digital signature against a digest. The concrete
// signature scheme is an external collaborator; see package crypto for
// a default ECDSA-based implementation.
type Verifier interface {
	Verify(sig types.Signature, digest types.Hash) bool
}

// Entry is the per-packet record carried through a send or receive
// session's authentication lifecycle.
type Entry struct {
	ID types.PacketID

	// Payload is present on the send side once inserted, and on the
	// receive side after decode.
	Payload []byte

	// Hashes holds predecessor hashes arrived so far, in arrival
	// order. Its length never exceeds len(Predecessors).
	Hashes []types.Hash

	// Signature is present on a sparse subset of packets.
	Signature *types.Signature

	// Predecessors is cached from the graph function at construction
	// time: graph.Predecessors(ID) with underflowed offsets omitted.
	Predecessors []types.PacketID

	State State
}

// New creates a NotReady entry with empty hashes, no signature, no
// payload, and cached predecessors.
func New(id types.PacketID) *Entry {
	return &Entry{
		ID:           id,
		Predecessors: graph.Predecessors(id),
		State:        NotReady,
	}
}

// NewWithPayload creates a NotReady entry carrying the given payload.
func NewWithPayload(id types.PacketID, payload []byte) *Entry {
	e := New(id)
	e.Payload = payload
	return e
}

// Successors forwards to the graph function for this entry's id.
func (e *Entry) Successors() []types.PacketID {
	return graph.Successors(e.ID)
}

// ComputeTotalHash hashes the entry's payload together with its child
// hashes in order, via the injected Hasher collaborator.
func (e *Entry) ComputeTotalHash(h Hasher) (types.Hash, error) {
	return h.TotalHash(e.Payload, e.Hashes)
}

// CompareHash reports whether h appears among this entry's hashes.
// It requires the entry to already be Authenticated: a parent's
// trustworthiness is what makes its stored hashes meaningful.
func (e *Entry) CompareHash(h types.Hash) error {
	if e.State != Authenticated {
		return ErrNotAuthenticated
	}
	for _, known := range e.Hashes {
		if known == h {
			return nil
		}
	}
	return ErrBadAuthentication
}
