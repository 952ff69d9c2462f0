package wire

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/alta-network/alta/graph"
	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/types"
)

// buildEntry constructs a mid-window entry (id=56) with a distinct
// payload and one distinguishable byte per predecessor hash, so a
// round trip can catch hash reordering or truncation.
func buildEntry(signed bool) *packet.Entry {
	const id types.PacketID = 56

	predecessors := graph.Predecessors(id)
	hashes := make([]types.Hash, len(predecessors))
	for i, p := range predecessors {
		var h types.Hash
		for j := range h {
			h[j] = byte(p)
		}
		hashes[i] = h
	}

	e := packet.New(id)
	e.Payload = bytes.Repeat([]byte{byte(id * 2)}, int(id))
	e.Hashes = hashes

	if signed {
		var sig types.Signature
		for i := range sig {
			sig[i] = 77
		}
		e.Signature = &sig
	}
	return e
}

// Codec round trip with a signature attached.
func TestEncodeDecodeRoundTripSigned(t *testing.T) {
	testRoundTrip(t, true)
}

// Codec round trip with no signature attached.
func TestEncodeDecodeRoundTripUnsigned(t *testing.T) {
	testRoundTrip(t, false)
}

func testRoundTrip(t *testing.T, signed bool) {
	t.Helper()
	entry := buildEntry(signed)

	// Encode into a 1500-byte buffer that already carries the payload,
	// matching the worked example's transport MTU.
	buf := make([]byte, 1500)
	copy(buf, entry.Payload)
	bb := bytes.NewBuffer(buf[:len(entry.Payload)])

	if err := Encode(entry, bb); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(bb.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.ID != entry.ID {
		t.Errorf("id = %d, want %d", decoded.ID, entry.ID)
	}
	if !bytes.Equal(decoded.Payload, entry.Payload) {
		t.Errorf("payload mismatch")
	}
	if !reflect.DeepEqual(decoded.Hashes, entry.Hashes) {
		t.Errorf("hashes = %v, want %v", decoded.Hashes, entry.Hashes)
	}
	if signed {
		if decoded.Signature == nil || *decoded.Signature != *entry.Signature {
			t.Errorf("signature mismatch")
		}
	} else if decoded.Signature != nil {
		t.Errorf("signature = %v, want nil", decoded.Signature)
	}
}

// EncodeToBytes composes payload and trailer in one call.
func TestEncodeToBytes(t *testing.T) {
	entry := buildEntry(false)
	out, err := EncodeToBytes(entry, entry.Payload)
	if err != nil {
		t.Fatalf("EncodeToBytes: %v", err)
	}
	decoded, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.ID != entry.ID {
		t.Errorf("id = %d, want %d", decoded.ID, entry.ID)
	}
}

// Decode rejects a buffer too short to hold a VarInt.
func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatalf("Decode(nil) succeeded, want error")
	}
}
