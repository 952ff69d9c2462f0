package crypto

import (
	"testing"

	"github.com/alta-network/alta/types"
)

// 1. KeccakHasher is deterministic and depends on every input.
func TestKeccakHasherDeterministic(t *testing.T) {
	h := KeccakHasher{}
	payload := []byte("packet payload")
	children := []types.Hash{types.BytesToHash([]byte("a")), types.BytesToHash([]byte("b"))}

	h1, err := h.TotalHash(payload, children)
	if err != nil {
		t.Fatalf("TotalHash: %v", err)
	}
	h2, err := h.TotalHash(payload, children)
	if err != nil {
		t.Fatalf("TotalHash: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %v != %v", h1, h2)
	}

	h3, err := h.TotalHash([]byte("different payload"), children)
	if err != nil {
		t.Fatalf("TotalHash: %v", err)
	}
	if h1 == h3 {
		t.Fatalf("hash did not change with payload")
	}
}

// 2. ECDSASigner/ECDSAVerifier round trip, and reject tampered digests.
func TestECDSASignAndVerify(t *testing.T) {
	signer, err := GenerateECDSASigner()
	if err != nil {
		t.Fatalf("GenerateECDSASigner: %v", err)
	}
	verifier := NewECDSAVerifier(signer.PublicKey())

	digest := types.BytesToHash([]byte("a total hash"))
	sig, err := signer.Sign(digest)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !verifier.Verify(sig, digest) {
		t.Fatalf("Verify rejected a valid signature")
	}

	tampered := types.BytesToHash([]byte("a different total hash"))
	if verifier.Verify(sig, tampered) {
		t.Fatalf("Verify accepted a signature over the wrong digest")
	}
}
