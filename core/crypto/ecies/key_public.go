package ecies

import (
	"crypto/ecdsa"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/internal"
)

// PublicKey is an ECIES public key on any supported curve.
type PublicKey struct {
	key *ecc.Crypto
}

// Bytes returns the public key in encoded format.
// If compressed is true, returns 1+L bytes (0x02/0x03 + X).
// If compressed is false, returns 1+2L bytes (0x04 + X + Y).
func (pub *PublicKey) Bytes(compressed bool) []byte {
	if pub == nil || pub.key == nil {
		return nil
	}
	if compressed {
		return pub.key.CompressedPublicKey()
	}
	return pub.key.UncompressedPublicKey()
}

// Hex returns the public key in hexadecimal encoding.
func (pub *PublicKey) Hex(compressed bool) string {
	return hex.EncodeToString(pub.Bytes(compressed))
}

// Curve returns the curve the key lives on.
func (pub *PublicKey) Curve() ecc.CurveID {
	return pub.key.CurveID()
}

// Decapsulate derives the symmetric key the sender derived. pub is the
// sender's ephemeral key, recipientPrivateKey the long-term key.
func (pub *PublicKey) Decapsulate(recipientPrivateKey *PrivateKey) ([]byte, error) {
	if recipientPrivateKey == nil {
		return nil, ErrPrivateKeyEmpty
	}

	secret, err := recipientPrivateKey.ECDH(pub)
	if err != nil {
		return nil, err
	}
	defer internal.Wipe(secret)

	return deriveKey(pub.Curve(), pub.Bytes(false), secret)
}

// Equals compares two public keys in constant time.
func (pub *PublicKey) Equals(other *PublicKey) bool {
	if pub == nil || other == nil {
		return pub == other
	}
	if pub.key == nil || other.key == nil {
		return false
	}
	return subtle.ConstantTimeCompare(pub.Bytes(false), other.Bytes(false)) == 1
}

// NewPublicKey parses a compressed or uncompressed public key. The curve is
// inferred from the encoding.
func NewPublicKey(key []byte) (*PublicKey, error) {
	if len(key) == 0 {
		return nil, ErrPublicKeyEmpty
	}

	id, err := ecc.DetectKey(key)
	if err != nil || len(key)%2 == 0 {
		return nil, fmt.Errorf("%w: unrecognized encoding of %d bytes", ErrInvalidPublicKey, len(key))
	}

	x, err := ecc.New(id)
	if err != nil {
		return nil, err
	}
	if err := x.SetPublicKey(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key: x}, nil
}

// ImportPublic wraps the public half of an ecc context.
func ImportPublic(x *ecc.Crypto) (*PublicKey, error) {
	if x == nil || !x.HasPublicKey() {
		return nil, ErrPublicKeyEmpty
	}
	return NewPublicKey(x.UncompressedPublicKey())
}

// ImportECDSAPublic converts a P-256 or P-384 ECDSA public key.
func ImportECDSAPublic(ecdsaKey *ecdsa.PublicKey) (*PublicKey, error) {
	if ecdsaKey == nil || ecdsaKey.X == nil || ecdsaKey.Y == nil {
		return nil, ErrPublicKeyEmpty
	}

	id, err := curveOf(ecdsaKey)
	if err != nil {
		return nil, err
	}

	key, err := ecc.PublicKeyFromXY(id, ecdsaKey.X.Bytes(), ecdsaKey.Y.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return NewPublicKey(key)
}

// curveOf maps a stdlib curve onto a supported curve id.
func curveOf(key *ecdsa.PublicKey) (ecc.CurveID, error) {
	if key.Curve == nil {
		return ecc.None, ErrInvalidPublicKey
	}
	id, err := ecc.ParseCurveID(key.Curve.Params().Name)
	if err != nil || id == ecc.None {
		return ecc.None, fmt.Errorf("%w: unsupported curve %s", ErrInvalidPublicKey, key.Curve.Params().Name)
	}
	return id, nil
}
