// Package wire implements the tag-free, tail-anchored binary encoding
// of an Entry. The format carries no explicit field tags or lengths
// for the hash region: the decoder infers how many predecessor hashes
// to expect from the identifier itself, via the same graph function
// the ring buffer uses.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

// ErrDecoding signals malformed wire bytes: a VarInt that overflows or
// runs off the end of the buffer, or a hash-and-signature region that
// does not fit the remaining bytes.
var ErrDecoding = errors.New("wire: malformed entry encoding")

// Encode appends an Entry's hashes, optional signature, and its
// reversed length and identifier VarInts to buf, which the caller has
// already filled with the entry's payload.
func Encode(e *packet.Entry, buf *bytes.Buffer) error {
	for _, h := range e.Hashes {
		buf.Write(h.Bytes())
	}

	bytesLen := 32 * len(e.Hashes)
	if e.Signature != nil {
		buf.Write(e.Signature.Bytes())
		bytesLen += types.SignatureLength
	}

	buf.Write(reverseVarint(uint64(bytesLen)))
	buf.Write(reverseVarint(uint64(e.ID)))
	return nil
}

// EncodeToBytes is a convenience wrapper returning a fresh byte slice
// holding a copy of payload followed by Encode's output.
func EncodeToBytes(e *packet.Entry, payload []byte) ([]byte, error) {
	buf := bytes.NewBuffer(append([]byte(nil), payload...))
	if err := Encode(e, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses buf from the tail: identifier, then length, then the
// hash-and-signature region, leaving the leading bytes as the payload.
// The number of predecessor hashes is derived from the decoded
// identifier via graph.Predecessors, since the format carries no count.
func Decode(buf []byte) (*packet.Entry, error) {
	id, lenID, err := decodeVarintFromTail(buf)
	if err != nil {
		return nil, err
	}
	rest := buf[:len(buf)-lenID]

	bytesLen, lenLen, err := decodeVarintFromTail(rest)
	if err != nil {
		return nil, err
	}
	rest = rest[:len(rest)-lenLen]

	if int(bytesLen) > len(rest) {
		return nil, ErrDecoding
	}
	splitIdx := len(rest) - int(bytesLen)
	payload := rest[:splitIdx]
	region := rest[splitIdx:]

	packetID := types.PacketID(id)
	predecessors := graph.Predecessors(packetID)
	nbHashes := len(predecessors)
	if nbHashes*types.HashLength > len(region) {
		return nil, ErrDecoding
	}

	hashes := make([]types.Hash, nbHashes)
	for i := 0; i < nbHashes; i++ {
		hashes[i] = types.BytesToHash(region[i*types.HashLength : (i+1)*types.HashLength])
	}
	region = region[nbHashes*types.HashLength:]

	var sig *types.Signature
	switch len(region) {
	case 0:
	case types.SignatureLength:
		s := types.BytesToSignature(region)
		sig = &s
	default:
		return nil, ErrDecoding
	}

	e := packet.New(packetID)
	e.Payload = append([]byte(nil), payload...)
	e.Hashes = hashes
	e.Signature = sig
	return e, nil
}

// reverseVarint encodes v as a standard 7-bit little-endian
// continuation VarInt, then reverses the resulting bytes so a decoder
// can read it starting from the end of a buffer.
func reverseVarint(v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = tmp[n-1-i]
	}
	return out
}

// decodeVarintFromTail reads up to 8 bytes from the end of buf,
// reverses them back to standard VarInt byte order, and decodes a
// value. It returns the value and the number of bytes the VarInt
// occupied at the tail of buf.
func decodeVarintFromTail(buf []byte) (value uint64, consumed int, err error) {
	n := len(buf)
	if n > 8 {
		n = 8
	}
	chunk := buf[len(buf)-n:]
	rev := make([]byte, n)
	for i := 0; i < n; i++ {
		rev[i] = chunk[n-1-i]
	}

	value, consumed = binary.Uvarint(rev)
	if consumed <= 0 {
		return 0, 0, ErrDecoding
	}
	return value, consumed, nil
}
