package ringbuffer

import (
	"errors"
	"testing"

	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

type alwaysValidVerifier struct{}

func (alwaysValidVerifier) Verify(sig types.Signature, digest types.Hash) bool {
	return true
}

// Send-receive round trip: a full send buffer drains through a hasher
// and a sparse set of signatures, and the receive buffer authenticates
// and pops a strictly increasing prefix of it.
func TestSendReceiveRoundTrip(t *testing.T) {
	hasher := sumHasher{}
	sb := NewSendBuffer(hasher)

	var nodes []*packet.Entry
	nextID := types.PacketID(0)
	for len(nodes) < 60 {
		for {
			if err := sb.InsertInSequence(dummyEntry(nextID)); err != nil {
				break
			}
			nextID++
		}
		for i := types.PacketID(0); i < Capacity; i++ {
			_ = sb.ForwardHash(sb.core.lowestID + i)
		}
		nodes = append(nodes, sb.PopReadyInSequence()...)
	}

	var sig types.Signature
	for i := range sig {
		sig[i] = 1
	}
	for _, idx := range []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 59} {
		s := sig
		nodes[idx].Signature = &s
	}

	rb := NewRecvBuffer(hasher, alwaysValidVerifier{})
	var authenticated []*packet.Entry
	for _, n := range nodes {
		if err := rb.Insert(n); err != nil {
			t.Fatalf("insert %d: %v", n.ID, err)
		}
		for i := types.PacketID(0); i < Capacity; i++ {
			_ = rb.Authenticate(rb.core.lowestID + i)
		}
		authenticated = append(authenticated, rb.PopReadyInSequence()...)
	}

	if len(authenticated) != 56 {
		t.Fatalf("authenticated %d entries, want 56", len(authenticated))
	}
	for i, e := range authenticated {
		if e.State != packet.Authenticated {
			t.Errorf("authenticated[%d] (id=%d) state = %v, want Authenticated", i, e.ID, e.State)
		}
		if i > 0 && e.ID <= authenticated[i-1].ID {
			t.Errorf("authenticated out of order at %d: %d <= %d", i, e.ID, authenticated[i-1].ID)
		}
	}
}

// A forged authenticated successor with a mismatching hash fails its
// child's authentication instead of silently skipping it.
func TestAuthenticateBadAuthenticationPropagates(t *testing.T) {
	rb := NewRecvBuffer(sumHasher{}, alwaysValidVerifier{})

	// Manufacture an already-authenticated successor holding a hash
	// that will not match the child's real total hash.
	forged := packet.New(9)
	forged.State = packet.Authenticated
	forged.Hashes = []types.Hash{types.BytesToHash([]byte("not the real hash"))}
	rb.core.slots[9%Capacity] = forged

	child := dummyEntry(8) // r=3: no predecessors, successors are {7, 9}
	if err := rb.Insert(child); !errors.Is(err, packet.ErrBadAuthentication) {
		t.Fatalf("insert id=8: err = %v, want ErrBadAuthentication", err)
	}
	if child.State != packet.BadAuthentication {
		t.Fatalf("child state = %v, want BadAuthentication", child.State)
	}

	for _, e := range rb.PopReadyInSequence() {
		if e.ID == 8 {
			t.Fatalf("bad-authentication entry was popped as ready")
		}
	}
}
