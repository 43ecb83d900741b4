package ecies

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/kochabx/eckit/core/crypto/ecc"
)

// deriveKey stretches an x-only ECDH secret into an AES-256 key with
// HKDF-SHA256. The salt binds the protocol version and curve, the info binds
// the ephemeral public key.
func deriveKey(id ecc.CurveID, ephemeralPublicKey []byte, sharedSecret []byte) ([]byte, error) {
	salt := []byte{CurrentVersion, byte(int(id) >> 8), byte(id)}
	kdfReader := hkdf.New(sha256.New, sharedSecret, salt, ephemeralPublicKey)

	key := make([]byte, AESKeySize)
	if _, err := io.ReadFull(kdfReader, key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return key, nil
}
