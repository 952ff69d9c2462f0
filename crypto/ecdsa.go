package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/alta-network/alta/types"
)

// curve is the elliptic curve backing ECDSASigner and ECDSAVerifier.
// TODO: replace elliptic.P256() with the actual secp256k1 curve
// parameters once a maintained Go implementation is wired in.
var curve = elliptic.P256()

// ECDSASigner produces fixed-width 64-byte signatures (r||s, 32 bytes
// each), dropping the recovery id a full ECDSA signature normally
// carries since packet.Verifier's Signature type has no room for it.
// It implements packet.Verifier's counterpart on the send side.
type ECDSASigner struct {
	priv *ecdsa.PrivateKey
}

// NewECDSASigner wraps an existing private key.
func NewECDSASigner(priv *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{priv: priv}
}

// GenerateECDSASigner creates a signer with a fresh key pair on curve.
func GenerateECDSASigner() (*ECDSASigner, error) {
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewECDSASigner(priv), nil
}

// Sign produces a 64-byte r||s signature over digest.
func (s *ECDSASigner) Sign(digest types.Hash) (types.Signature, error) {
	r, sVal, err := ecdsa.Sign(rand.Reader, s.priv, digest.Bytes())
	if err != nil {
		return types.Signature{}, err
	}

	var sig types.Signature
	r.FillBytes(sig[:32])
	sVal.FillBytes(sig[32:])
	return sig, nil
}

// PublicKey returns the verifying half of the signer's key pair.
func (s *ECDSASigner) PublicKey() *ecdsa.PublicKey {
	return &s.priv.PublicKey
}

// ECDSAVerifier checks a 64-byte r||s signature against a digest. It
// implements packet.Verifier.
type ECDSAVerifier struct {
	pub *ecdsa.PublicKey
}

// NewECDSAVerifier wraps an existing public key.
func NewECDSAVerifier(pub *ecdsa.PublicKey) *ECDSAVerifier {
	return &ECDSAVerifier{pub: pub}
}

// Verify reports whether sig is a valid signature over digest under
// the wrapped public key.
func (v *ECDSAVerifier) Verify(sig types.Signature, digest types.Hash) bool {
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	return ecdsa.Verify(v.pub, digest.Bytes(), r, s)
}
