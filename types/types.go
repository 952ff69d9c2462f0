// Package types defines the wire-level value types shared across the ALTA
// packages: packet identifiers, content hashes, and signatures.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the byte length of a PacketHash (the output of the
	// configured total-hash function).
	HashLength = 32

	// SignatureLength is the byte length of a Signature (the output of
	// the configured signature scheme).
	SignatureLength = 64
)

// PacketID is a monotonically increasing 64-bit identifier of a packet
// within a session, starting at 0.
type PacketID = uint64

// Hash is the 32-byte total-hash digest of a packet.
type Hash [HashLength]byte

// Signature is the 64-byte digital signature attached to a sparse subset
// of packets.
type Signature [SignatureLength]byte

// BytesToHash converts b to a Hash, left-padding if shorter than
// HashLength and truncating from the left if longer.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// SetBytes sets h from b, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool { return h == Hash{} }

// Hex returns the 0x-prefixed hex representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// BytesToSignature converts b to a Signature, left-padding if shorter
// than SignatureLength and truncating from the left if longer.
func BytesToSignature(b []byte) Signature {
	var s Signature
	s.SetBytes(b)
	return s
}

// SetBytes sets s from b, left-padding if necessary.
func (s *Signature) SetBytes(b []byte) {
	if len(b) > SignatureLength {
		b = b[len(b)-SignatureLength:]
	}
	copy(s[SignatureLength-len(b):], b)
}

// Bytes returns the byte representation of the signature.
func (s Signature) Bytes() []byte { return s[:] }

// Hex returns the 0x-prefixed hex representation of the signature.
func (s Signature) Hex() string { return fmt.Sprintf("0x%x", s[:]) }

// String implements fmt.Stringer.
func (s Signature) String() string { return s.Hex() }

// HexToHash decodes a hex string (optionally 0x-prefixed) into a Hash.
func HexToHash(str string) Hash { return BytesToHash(fromHex(str)) }

func fromHex(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}
