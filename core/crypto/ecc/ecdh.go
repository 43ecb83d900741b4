package ecc

import (
	"encoding/base64"
	"fmt"

	"github.com/kochabx/eckit/core/crypto/internal"
)

// SharedSecret computes d·Q for the peer's encoded public key and returns
// the x coordinate of the result (RFC 5903 §9), ByteLen bytes long. The
// peer key must belong to the bound curve.
func (x *Crypto) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if x.d == nil {
		return nil, ErrMissingPrivateKey
	}

	q, err := Decompress(x.curve, peerPublicKey)
	if err != nil {
		return nil, err
	}

	s := x.curve.ScalarMult(q, x.d)
	if s.IsInfinity() {
		return nil, ErrResultAtInfinity
	}
	return internal.PadInt(s.X, x.curve.byteLen), nil
}

// SharedSecretBase64 is SharedSecret over a base64 encoded peer key, with a
// base64 encoded result.
func (x *Crypto) SharedSecretBase64(peerPublicKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(peerPublicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncodingLength, err)
	}

	secret, err := x.SharedSecret(raw)
	if err != nil {
		return "", err
	}
	defer internal.Wipe(secret)
	return base64.StdEncoding.EncodeToString(secret), nil
}

// SharedSecretLength is the size of a shared secret in bytes.
func (x *Crypto) SharedSecretLength() int {
	return x.curve.byteLen
}
