package ecies

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kochabx/eckit/core/crypto/ecc"
)

// PEM block types. Curves outside x509's reach use the raw types, with the
// curve named in the "Curve" header.
const (
	pemPrivateKey     = "ECC PRIVATE KEY"
	pemPublicKey      = "ECC PUBLIC KEY"
	pemX509PrivateKey = "EC PRIVATE KEY"
	pemX509PublicKey  = "PUBLIC KEY"
	pemCurveHeader    = "Curve"
)

// KeyOption contains options for key generation and file I/O.
type KeyOption struct {
	Dirpath            string `json:"dirpath"`
	PrivateKeyFilename string `json:"private_key_filename"`
	PublicKeyFilename  string `json:"public_key_filename"`
}

func defaultKeyOption() *KeyOption {
	return &KeyOption{
		Dirpath:            ".",
		PrivateKeyFilename: "private.pem",
		PublicKeyFilename:  "public.pem",
	}
}

// WithDirpath sets the directory path for key file operations.
func WithDirpath(dirpath string) func(*KeyOption) {
	return func(o *KeyOption) {
		o.Dirpath = dirpath
	}
}

// WithPrivateKeyFilename sets the filename for the private key.
func WithPrivateKeyFilename(filename string) func(*KeyOption) {
	return func(o *KeyOption) {
		o.PrivateKeyFilename = filename
	}
}

// WithPublicKeyFilename sets the filename for the public key.
func WithPublicKeyFilename(filename string) func(*KeyOption) {
	return func(o *KeyOption) {
		o.PublicKeyFilename = filename
	}
}

// GenerateKeyPair generates a key pair on the given curve and saves both
// halves as PEM files.
func GenerateKeyPair(id ecc.CurveID, opts ...func(*KeyOption)) error {
	option := defaultKeyOption()
	for _, opt := range opts {
		opt(option)
	}

	privateKey, err := GenerateKey(id)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer privateKey.Destroy()

	privateKeyPath := filepath.Join(option.Dirpath, option.PrivateKeyFilename)
	if err := SavePrivateKey(privateKey, privateKeyPath); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}

	publicKeyPath := filepath.Join(option.Dirpath, option.PublicKeyFilename)
	if err := SavePublicKey(privateKey.Public(), publicKeyPath); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}

	return nil
}

// MarshalPrivateKey encodes a private key as a PEM block.
func MarshalPrivateKey(privateKey *PrivateKey) ([]byte, error) {
	if privateKey == nil || privateKey.key == nil {
		return nil, ErrPrivateKeyEmpty
	}
	block := &pem.Block{
		Type:    pemPrivateKey,
		Headers: map[string]string{pemCurveHeader: privateKey.Curve().String()},
		Bytes:   privateKey.Bytes(),
	}
	return pem.EncodeToMemory(block), nil
}

// MarshalPublicKey encodes a public key as a PEM block. The point is stored
// compressed.
func MarshalPublicKey(publicKey *PublicKey) ([]byte, error) {
	if publicKey == nil || publicKey.key == nil {
		return nil, ErrPublicKeyEmpty
	}
	block := &pem.Block{
		Type:    pemPublicKey,
		Headers: map[string]string{pemCurveHeader: publicKey.Curve().String()},
		Bytes:   publicKey.Bytes(true),
	}
	return pem.EncodeToMemory(block), nil
}

// ParsePrivateKey decodes a PEM private key. SEC 1 "EC PRIVATE KEY" blocks
// for P-256 and P-384 are accepted too.
func ParsePrivateKey(data []byte) (*PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}

	switch block.Type {
	case pemPrivateKey:
		id, err := curveHeader(block)
		if err != nil {
			return nil, err
		}
		return NewPrivateKeyOn(id, block.Bytes)
	case pemX509PrivateKey:
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		return ImportECDSA(key)
	}
	return nil, fmt.Errorf("%w: unexpected type %q", ErrInvalidPEMBlock, block.Type)
}

// ParsePublicKey decodes a PEM public key. PKIX "PUBLIC KEY" blocks for
// P-256 and P-384 are accepted too.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}

	switch block.Type {
	case pemPublicKey:
		id, err := curveHeader(block)
		if err != nil {
			return nil, err
		}
		pub, err := NewPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		if pub.Curve() != id {
			return nil, fmt.Errorf("%w: header says %s, key is %s", ErrInvalidPublicKey, id, pub.Curve())
		}
		return pub, nil
	case pemX509PublicKey:
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		ecdsaKey, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return nil, ErrInvalidPublicKey
		}
		return ImportECDSAPublic(ecdsaKey)
	}
	return nil, fmt.Errorf("%w: unexpected type %q", ErrInvalidPEMBlock, block.Type)
}

// SavePrivateKey saves a private key to a file in PEM format.
func SavePrivateKey(privateKey *PrivateKey, path string) error {
	data, err := MarshalPrivateKey(privateKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFileRead, err)
	}
	return nil
}

// SavePublicKey saves a public key to a file in PEM format.
func SavePublicKey(publicKey *PublicKey, path string) error {
	data, err := MarshalPublicKey(publicKey)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyFileRead, err)
	}
	return nil
}

// LoadPrivateKey loads a private key from a PEM file.
func LoadPrivateKey(path string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFileRead, err)
	}
	return ParsePrivateKey(data)
}

// LoadPublicKey loads a public key from a PEM file.
func LoadPublicKey(path string) (*PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFileRead, err)
	}
	return ParsePublicKey(data)
}

func curveHeader(block *pem.Block) (ecc.CurveID, error) {
	id, err := ecc.ParseCurveID(block.Headers[pemCurveHeader])
	if err != nil || id == ecc.None {
		return ecc.None, fmt.Errorf("%w: missing or unknown curve header", ErrInvalidPEMBlock)
	}
	return id, nil
}
