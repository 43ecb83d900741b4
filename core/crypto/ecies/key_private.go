package ecies

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/internal"
)

// PrivateKey is an ECIES private key on any supported curve.
type PrivateKey struct {
	publicKey *PublicKey
	key       *ecc.Crypto
}

// Public returns the public key corresponding to this private key.
func (priv *PrivateKey) Public() *PublicKey {
	return priv.publicKey
}

// Curve returns the curve the key lives on.
func (priv *PrivateKey) Curve() ecc.CurveID {
	return priv.key.CurveID()
}

// Bytes returns the private scalar, zero-padded to the curve's byte length.
func (priv *PrivateKey) Bytes() []byte {
	if priv.key == nil {
		return nil
	}
	return priv.key.PrivateKey()
}

// Hex returns the private key in hexadecimal encoding.
func (priv *PrivateKey) Hex() string {
	return hex.EncodeToString(priv.Bytes())
}

// Crypto exposes the underlying ecc context, e.g. for signing.
func (priv *PrivateKey) Crypto() *ecc.Crypto {
	return priv.key
}

// Encapsulate performs ECDH with the recipient's public key and derives a
// symmetric key from the result. priv is the sender's ephemeral key.
func (priv *PrivateKey) Encapsulate(recipientPublicKey *PublicKey) ([]byte, error) {
	secret, err := priv.ECDH(recipientPublicKey)
	if err != nil {
		return nil, err
	}
	defer internal.Wipe(secret)

	return deriveKey(priv.Curve(), priv.publicKey.Bytes(false), secret)
}

// ECDH returns the raw x-only shared secret. It is not a suitable
// encryption key on its own; use Encapsulate for that.
func (priv *PrivateKey) ECDH(publicKey *PublicKey) ([]byte, error) {
	if publicKey == nil || publicKey.key == nil {
		return nil, ErrPublicKeyEmpty
	}
	if priv.key == nil || !priv.key.HasPrivateKey() {
		return nil, ErrPrivateKeyEmpty
	}
	if publicKey.Curve() != priv.Curve() {
		return nil, fmt.Errorf("%w: %s and %s", ErrCurveMismatch, priv.Curve(), publicKey.Curve())
	}

	secret, err := priv.key.SharedSecret(publicKey.Bytes(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return secret, nil
}

// Equals compares two private keys in constant time.
func (priv *PrivateKey) Equals(other *PrivateKey) bool {
	if priv == nil || other == nil {
		return priv == other
	}
	if priv.key == nil || other.key == nil {
		return priv.key == other.key
	}
	return priv.key.Equals(other.key)
}

// Destroy clears the private scalar. The key is unusable afterwards.
func (priv *PrivateKey) Destroy() {
	if priv.key != nil {
		priv.key.Destroy()
		priv.key = nil
	}
}

// GenerateKey generates a new ECIES key pair on the given curve.
func GenerateKey(id ecc.CurveID) (*PrivateKey, error) {
	x, err := ecc.GenerateKeyPair(id)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(x)
}

// NewPrivateKey parses a raw private scalar. The curve is inferred from its
// length.
func NewPrivateKey(key []byte) (*PrivateKey, error) {
	id, err := ecc.Detect(len(key), false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return NewPrivateKeyOn(id, key)
}

// NewPrivateKeyOn parses a raw private scalar for a known curve.
func NewPrivateKeyOn(id ecc.CurveID, key []byte) (*PrivateKey, error) {
	x, err := ecc.New(id)
	if err != nil {
		return nil, err
	}
	if err := x.SetPrivateKey(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return newPrivateKey(x)
}

// Import wraps an ecc context that holds a private key.
func Import(x *ecc.Crypto) (*PrivateKey, error) {
	if x == nil || !x.HasPrivateKey() {
		return nil, ErrPrivateKeyEmpty
	}
	return NewPrivateKeyOn(x.CurveID(), x.PrivateKey())
}

// ImportECDSA converts a P-256 or P-384 ECDSA private key.
func ImportECDSA(ecdsaKey *ecdsa.PrivateKey) (*PrivateKey, error) {
	if ecdsaKey == nil || ecdsaKey.D == nil {
		return nil, ErrPrivateKeyEmpty
	}

	id, err := curveOf(&ecdsaKey.PublicKey)
	if err != nil {
		return nil, err
	}

	c, _ := ecc.ParametersFor(id)
	key := internal.PadInt(ecdsaKey.D, c.PrivateKeyLength())
	defer internal.Wipe(key)
	return NewPrivateKeyOn(id, key)
}

func newPrivateKey(x *ecc.Crypto) (*PrivateKey, error) {
	pub, err := NewPublicKey(x.UncompressedPublicKey())
	if err != nil {
		return nil, err
	}
	return &PrivateKey{publicKey: pub, key: x}, nil
}
