package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/core/crypto/internal"
)

// Encrypt encrypts plaintext for the holder of recipientPublicKey.
//
// The encryption process:
// 1. Generate an ephemeral key pair on the recipient's curve
// 2. Perform ECDH with the recipient's public key
// 3. Derive an AES-256 key with HKDF
// 4. Encrypt the plaintext using AES-256-GCM
// 5. Return: [version || curve_bits || ephemeral_public_key || nonce || tag || ciphertext]
func Encrypt(recipientPublicKey *PublicKey, plaintext []byte) ([]byte, error) {
	if recipientPublicKey == nil || recipientPublicKey.key == nil {
		return nil, ErrPublicKeyEmpty
	}

	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: plaintext is empty", ErrEncryptionFailed)
	}

	id := recipientPublicKey.Curve()
	ephemeralKey, err := GenerateKey(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	defer ephemeralKey.Destroy()

	key, err := ephemeralKey.Encapsulate(recipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	defer internal.Wipe(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, AESGCMNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %v", ErrEncryptionFailed, err)
	}

	// Seal 输出 data || tag, 这里需要 tag 在前
	sealed := buffers.get(len(plaintext) + AESGCMTagSize)
	defer buffers.put(sealed)
	sealed = aesGCM.Seal(sealed[:0], nonce, plaintext, nil)
	tagOffset := len(sealed) - AESGCMTagSize

	ephemeralPubKey := ephemeralKey.Public().Bytes(false)
	result := make([]byte, 0, headerSize+len(ephemeralPubKey)+len(sealed)+AESGCMNonceSize)
	result = append(result, CurrentVersion)
	result = binary.BigEndian.AppendUint16(result, uint16(id))
	result = append(result, ephemeralPubKey...)
	result = append(result, nonce...)
	result = append(result, sealed[tagOffset:]...)
	result = append(result, sealed[:tagOffset]...)
	return result, nil
}

// Decrypt decrypts ciphertext produced by Encrypt. The curve recorded in the
// ciphertext must match the private key's curve.
func Decrypt(privateKey *PrivateKey, ciphertext []byte) ([]byte, error) {
	if privateKey == nil || privateKey.key == nil {
		return nil, ErrPrivateKeyEmpty
	}

	if len(ciphertext) < headerSize {
		return nil, ErrCiphertextTooShort
	}

	if version := ciphertext[offsetVersion]; version != CurrentVersion {
		return nil, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, version, CurrentVersion)
	}

	id := ecc.CurveID(binary.BigEndian.Uint16(ciphertext[offsetCurve:]))
	if id != privateKey.Curve() {
		return nil, fmt.Errorf("%w: encrypted for %s, key is %s", ErrInvalidCiphertext, id, privateKey.Curve())
	}
	if len(ciphertext) < MinCiphertextSize(id) {
		return nil, ErrCiphertextTooShort
	}

	c, _ := ecc.ParametersFor(id)
	offsetNonce := offsetEphemeralKey + c.UncompressedLength()
	offsetTag := offsetNonce + AESGCMNonceSize
	offsetData := offsetTag + AESGCMTagSize

	ephemeralPublicKey, err := NewPublicKey(ciphertext[offsetEphemeralKey:offsetNonce])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ephemeral public key: %v", ErrInvalidCiphertext, err)
	}
	if ephemeralPublicKey.Curve() != id {
		return nil, fmt.Errorf("%w: ephemeral key is not on %s", ErrInvalidCiphertext, id)
	}

	nonce := ciphertext[offsetNonce:offsetTag]
	tag := ciphertext[offsetTag:offsetData]
	encryptedData := ciphertext[offsetData:]

	key, err := ephemeralPublicKey.Decapsulate(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: key derivation failed: %v", ErrDecryptionFailed, err)
	}
	defer internal.Wipe(key)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	// GCM 需要 data || tag
	sealed := buffers.get(len(encryptedData) + len(tag))
	defer buffers.put(sealed)
	copy(sealed, encryptedData)
	copy(sealed[len(encryptedData):], tag)

	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed or corrupted data: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCMWithNonceSize(block, AESGCMNonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
