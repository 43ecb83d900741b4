package ecc

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/kochabx/eckit/core/crypto/internal"
)

// Crypto binds a curve to an optional private scalar and public point.
//
// A Crypto is not safe for concurrent mutation. SetPrivateKey,
// SetPublicKey and SetCompressed need external synchronization when the
// value is shared; the read-only accessors are safe once it is built.
type Crypto struct {
	curve      *Curve
	d          *big.Int // nil when no private key is set
	q          Point    // infinity when no public key is set
	compressed bool
	opts       options
}

// New returns an empty context bound to the given curve.
func New(id CurveID, opts ...Option) (*Crypto, error) {
	c, err := curveFor(id)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Crypto{
		curve:      c,
		compressed: o.compressed,
		opts:       o,
	}, nil
}

// ForKey builds a context from a raw private key or an encoded public key,
// inferring the curve from the key (see DetectKey).
func ForKey(key []byte, opts ...Option) (*Crypto, error) {
	id, err := DetectKey(key)
	if err != nil {
		return nil, err
	}

	x, err := New(id, opts...)
	if err != nil {
		return nil, err
	}

	if len(key) == x.curve.PrivateKeyLength() {
		err = x.SetPrivateKey(key)
	} else {
		err = x.SetPublicKey(key)
	}
	if err != nil {
		return nil, err
	}
	return x, nil
}

// ForKeyBase64 is ForKey over a base64 encoded key.
func ForKeyBase64(key string, opts ...Option) (*Crypto, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedKeyLength, err)
	}
	return ForKey(raw, opts...)
}

// Curve returns the bound curve parameters.
func (x *Crypto) Curve() *Curve { return x.curve }

// CurveID returns the bound curve identifier.
func (x *Crypto) CurveID() CurveID { return x.curve.ID }

// Bits returns the bit length of the bound curve.
func (x *Crypto) Bits() int { return x.curve.BitSize }

// Name returns the SEC 2 name of the bound curve, e.g. "secp192r1".
func (x *Crypto) Name() string { return x.curve.ID.String() }

// Compressed reports the public key encoding preference.
func (x *Crypto) Compressed() bool { return x.compressed }

// SetCompressed sets the public key encoding preference. It affects
// PublicKey only; decoding accepts both forms.
func (x *Crypto) SetCompressed(compressed bool) { x.compressed = compressed }

// HasPrivateKey reports whether a private scalar is set.
func (x *Crypto) HasPrivateKey() bool { return x.d != nil }

// HasPublicKey reports whether a public point is set.
func (x *Crypto) HasPublicKey() bool { return !x.q.IsInfinity() }

// PublicPoint returns a copy of the public point.
func (x *Crypto) PublicPoint() Point {
	if x.q.IsInfinity() {
		return Point{}
	}
	return Point{X: new(big.Int).Set(x.q.X), Y: new(big.Int).Set(x.q.Y)}
}

// SetPrivateKey sets the private scalar from exactly ByteLen big-endian bytes
// and recomputes the public point from it.
func (x *Crypto) SetPrivateKey(key []byte) error {
	if len(key) != x.curve.PrivateKeyLength() {
		return fmt.Errorf("%w: got %d bytes for %s, want %d",
			ErrInvalidKeyLength, len(key), x.curve.ID, x.curve.PrivateKeyLength())
	}

	d := new(big.Int).SetBytes(key)
	if !x.curve.inRange(d) {
		d.SetInt64(0)
		return ErrScalarOutOfRange
	}

	x.wipe()
	x.d = d
	x.q = x.curve.ScalarBaseMult(d)
	return nil
}

// SetPublicKey decodes and sets the public point. A key encoded for another
// supported curve rebinds the context to that curve; the bound curve is kept
// only when both the length and the prefix fit one of its encodings, since
// 33 and 49 byte keys are valid on two curves each. The private scalar is
// dropped whenever it no longer matches the new public point. The encoding
// preference follows the form of key.
func (x *Crypto) SetPublicKey(key []byte) error {
	c := x.curve
	if !fitsEncoding(c, key) {
		id, err := detectPublicKey(key)
		if err != nil {
			return err
		}
		c = registry[id]
	}

	q, err := Decompress(c, key)
	if err != nil {
		return err
	}

	if c != x.curve || (x.d != nil && !c.ScalarBaseMult(x.d).Equal(q)) {
		x.wipe()
	}
	x.curve = c
	x.q = q
	x.compressed = len(key) == c.CompressedLength()
	return nil
}

// fitsEncoding reports whether key has the length and prefix of a
// compressed or uncompressed point on c.
func fitsEncoding(c *Curve, key []byte) bool {
	switch len(key) {
	case c.CompressedLength():
		return key[0] == CompressedEvenTag || key[0] == CompressedOddTag
	case c.UncompressedLength():
		return key[0] == UncompressedPointTag
	}
	return false
}

// SetPrivateKeyBase64 is SetPrivateKey over a base64 encoded key.
func (x *Crypto) SetPrivateKeyBase64(key string) error {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}
	defer internal.Wipe(raw)
	return x.SetPrivateKey(raw)
}

// SetPublicKeyBase64 is SetPublicKey over a base64 encoded key.
func (x *Crypto) SetPublicKeyBase64(key string) error {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncodingLength, err)
	}
	return x.SetPublicKey(raw)
}

// PrivateKey returns the private scalar as ByteLen big-endian bytes, or nil.
func (x *Crypto) PrivateKey() []byte {
	if x.d == nil {
		return nil
	}
	return internal.PadInt(x.d, x.curve.byteLen)
}

// PublicKey returns the public key encoded per the compression preference,
// or nil.
func (x *Crypto) PublicKey() []byte {
	if !x.HasPublicKey() {
		return nil
	}
	return Marshal(x.curve, x.q, x.compressed)
}

// CompressedPublicKey returns the compressed public key, or nil.
func (x *Crypto) CompressedPublicKey() []byte {
	if !x.HasPublicKey() {
		return nil
	}
	return Compress(x.curve, x.q)
}

// UncompressedPublicKey returns the uncompressed public key, or nil.
func (x *Crypto) UncompressedPublicKey() []byte {
	if !x.HasPublicKey() {
		return nil
	}
	return Uncompress(x.curve, x.q)
}

// PublicKeyX returns the x coordinate padded to ByteLen bytes, or nil.
func (x *Crypto) PublicKeyX() []byte {
	if !x.HasPublicKey() {
		return nil
	}
	return internal.PadInt(x.q.X, x.curve.byteLen)
}

// PublicKeyY returns the y coordinate padded to ByteLen bytes, or nil.
func (x *Crypto) PublicKeyY() []byte {
	if !x.HasPublicKey() {
		return nil
	}
	return internal.PadInt(x.q.Y, x.curve.byteLen)
}

func (x *Crypto) PrivateKeyBase64() string { return encode(x.PrivateKey()) }

func (x *Crypto) PublicKeyBase64() string { return encode(x.PublicKey()) }

func (x *Crypto) PublicKeyXBase64() string { return encode(x.PublicKeyX()) }

func (x *Crypto) PublicKeyYBase64() string { return encode(x.PublicKeyY()) }

// Equals compares the private keys of two contexts in constant time.
func (x *Crypto) Equals(other *Crypto) bool {
	if x == nil || other == nil {
		return x == other
	}
	if x.d == nil || other.d == nil {
		return x.d == other.d && x.q.Equal(other.q)
	}
	if x.curve != other.curve {
		return false
	}
	return subtle.ConstantTimeCompare(x.PrivateKey(), other.PrivateKey()) == 1
}

// Destroy clears the private scalar. The context keeps its public key.
func (x *Crypto) Destroy() {
	x.wipe()
}

func (x *Crypto) wipe() {
	if x.d != nil {
		x.d.SetInt64(0)
		x.d = nil
	}
}

func encode(b []byte) string {
	if b == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}
