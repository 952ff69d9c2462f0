// Package graph implements the ALTA dependency graph: pure functions
// mapping a packet identifier to the set of predecessors that must hash
// it and the set of successors that must receive its hash.
//
// The graph is parameterized by two compile-time constants, A and P,
// canonically A=3, P=5. Generalizing to arbitrary (a, p) at run time
// is out of scope; the offset table below is specific to the
// canonical parameters.
package graph

import "github.com/alta-network/alta/types"

// Canonical ALTA parameters. A different (a, p) would require a
// different offset table and is not supported by this build.
const (
	A = 3
	P = 5
)

// predecessorOffsets[r] lists the relative offsets, from an identifier
// with id mod P == r, of the packets that must hash it.
var predecessorOffsets = [P][]int64{
	0: {-15, -5, -4, -1, 1},
	1: {1, 3},
	2: {1},
	3: {},
	4: {-2, -1},
}

// successorOffsets[r] lists the relative offsets, from an identifier
// with id mod P == r, of the packets that receive its hash.
var successorOffsets = [P][]int64{
	0: {5, 15},
	1: {-1, 4},
	2: {-1, 2},
	3: {-1, 1},
	4: {-3, 1},
}

// Predecessors returns the identifiers of the packets that must embed
// their hash inside the packet with the given id, in the canonical
// offset order. Offsets that would underflow below zero are dropped.
func Predecessors(id types.PacketID) []types.PacketID {
	return applyOffsets(id, predecessorOffsets[id%P])
}

// Successors returns the identifiers of the packets into which the
// packet with the given id must be embedded, in the canonical offset
// order. Offsets that would underflow below zero are dropped.
func Successors(id types.PacketID) []types.PacketID {
	return applyOffsets(id, successorOffsets[id%P])
}

func applyOffsets(id types.PacketID, offsets []int64) []types.PacketID {
	if len(offsets) == 0 {
		return nil
	}
	out := make([]types.PacketID, 0, len(offsets))
	for _, off := range offsets {
		if off < 0 {
			neg := uint64(-off)
			if neg > id {
				continue // underflow: silently dropped
			}
			out = append(out, id-neg)
			continue
		}
		out = append(out, id+uint64(off))
	}
	return out
}
