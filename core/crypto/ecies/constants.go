package ecies

import "github.com/kochabx/eckit/core/crypto/ecc"

// Symmetric layer parameters
const (
	// AESKeySize is the size of the AES-256 symmetric key
	AESKeySize = 32

	// AESGCMNonceSize is the size of the AES-GCM nonce (IV)
	AESGCMNonceSize = 16

	// AESGCMTagSize is the size of the AES-GCM authentication tag
	AESGCMTagSize = 16
)

// Ciphertext layout
//
//	[version:1][curve_bits:2][ephemeral_pubkey:1+2L][nonce:16][tag:16][encrypted_data:>=1]
//
// L is the coordinate size of the curve named by curve_bits. The ephemeral
// key is always uncompressed.
const (
	headerSize = 1 + 2

	offsetVersion      = 0
	offsetCurve        = 1
	offsetEphemeralKey = headerSize
)

// CurrentVersion is the current protocol version
const CurrentVersion byte = 0x02

// MinCiphertextSize is the smallest valid ciphertext for the given curve.
func MinCiphertextSize(id ecc.CurveID) int {
	c, err := ecc.ParametersFor(id)
	if err != nil {
		return 0
	}
	return headerSize + c.UncompressedLength() + AESGCMNonceSize + AESGCMTagSize + 1
}

// Overhead is the number of bytes Encrypt adds to a plaintext.
func Overhead(id ecc.CurveID) int {
	if n := MinCiphertextSize(id); n > 0 {
		return n - 1
	}
	return 0
}
