package ecc

import (
	"encoding/base64"
	"fmt"
)

// Detect infers a curve from a raw key length. Private keys are matched
// against bits/8. Public keys are matched against every compressed length
// first and only then against the uncompressed lengths, so the colliding
// sizes resolve to the compressed reading: 33 bytes is secp256r1 and 49
// bytes is secp384r1. Use DetectKey when the key bytes are available.
func Detect(length int, public bool) (CurveID, error) {
	if !public {
		for _, id := range ordered {
			if registry[id].PrivateKeyLength() == length {
				return id, nil
			}
		}
		return None, fmt.Errorf("%w: %d byte private key", ErrUnrecognizedKeyLength, length)
	}

	for _, id := range ordered {
		if registry[id].CompressedLength() == length {
			return id, nil
		}
	}
	for _, id := range ordered {
		if registry[id].UncompressedLength() == length {
			return id, nil
		}
	}
	return None, fmt.Errorf("%w: %d byte public key", ErrUnrecognizedKeyLength, length)
}

// DetectKey infers a curve from an encoded key. Odd lengths are read as
// public keys, with the prefix byte choosing between the compressed and
// uncompressed reading; even lengths are read as private keys.
func DetectKey(key []byte) (CurveID, error) {
	if len(key)%2 == 0 {
		return Detect(len(key), false)
	}
	return detectPublicKey(key)
}

// DetectKeyBase64 is DetectKey over a base64 encoded key.
func DetectKeyBase64(key string) (CurveID, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return None, fmt.Errorf("%w: %v", ErrUnrecognizedKeyLength, err)
	}
	return DetectKey(raw)
}

func detectPublicKey(key []byte) (CurveID, error) {
	if len(key) == 0 {
		return None, unrecognizedPublicKey(0)
	}

	var size int
	switch key[0] {
	case UncompressedPointTag:
		size = (len(key) - 1) / 2
		if 2*size+1 != len(key) {
			size = -1
		}
	case CompressedEvenTag, CompressedOddTag:
		size = len(key) - 1
	default:
		id, err := Detect(len(key), true)
		if err != nil {
			return None, unrecognizedPublicKey(len(key))
		}
		return id, nil
	}

	for _, id := range ordered {
		if registry[id].ByteLen() == size {
			return id, nil
		}
	}
	return None, unrecognizedPublicKey(len(key))
}

// unrecognizedPublicKey matches both ErrInvalidEncodingLength and
// ErrUnrecognizedKeyLength.
func unrecognizedPublicKey(n int) error {
	return fmt.Errorf("%w (%w): got %d bytes", ErrInvalidEncodingLength, ErrUnrecognizedKeyLength, n)
}
