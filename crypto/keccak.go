// Package crypto provides default implementations of the collaborator
// interfaces packet.Hasher and packet.Verifier that the ring buffers
// delegate cryptographic work to. Neither the hash function nor the
// signature scheme is mandated by the core; these are one reasonable
// choice, kept separate so a caller can substitute its own.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/alta-network/alta/types"
)

// KeccakHasher computes an entry's total hash as Keccak-256 over the
// payload followed by each child hash in order. It implements
// packet.Hasher.
type KeccakHasher struct{}

// TotalHash hashes payload concatenated with each of childHashes, in
// order, using Keccak-256.
func (KeccakHasher) TotalHash(payload []byte, childHashes []types.Hash) (types.Hash, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write(payload)
	for _, child := range childHashes {
		h.Write(child.Bytes())
	}
	return types.BytesToHash(h.Sum(nil)), nil
}

// Keccak256 hashes the concatenation of data using Keccak-256, the
// same primitive KeccakHasher builds on. It is exposed for callers that
// need a standalone digest outside the Hasher interface, e.g. to derive
// a key fingerprint.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}
