package ecc

import (
	"fmt"
	"math/big"

	"github.com/kochabx/eckit/core/crypto/internal"
)

// Point encoding prefixes
const (
	UncompressedPointTag = 0x04 // 0x04 || X || Y
	CompressedEvenTag    = 0x02 // 0x02 || X, Y even
	CompressedOddTag     = 0x03 // 0x03 || X, Y odd
)

// Compress encodes p as prefix || X with X zero-padded to ByteLen bytes.
func Compress(c *Curve, p Point) []byte {
	out := make([]byte, 1+c.byteLen)
	out[0] = CompressedEvenTag
	if p.Y.Bit(0) == 1 {
		out[0] = CompressedOddTag
	}
	p.X.FillBytes(out[1:])
	return out
}

// Uncompress encodes p as 0x04 || X || Y.
func Uncompress(c *Curve, p Point) []byte {
	out := make([]byte, 1+2*c.byteLen)
	out[0] = UncompressedPointTag
	p.X.FillBytes(out[1 : 1+c.byteLen])
	p.Y.FillBytes(out[1+c.byteLen:])
	return out
}

// Marshal encodes p in compressed or uncompressed form.
func Marshal(c *Curve, p Point, compressed bool) []byte {
	if compressed {
		return Compress(c, p)
	}
	return Uncompress(c, p)
}

// Decompress decodes a public key in either form and checks that the point
// lies on c. Despite the name it accepts uncompressed input too.
func Decompress(c *Curve, b []byte) (Point, error) {
	switch len(b) {
	case c.CompressedLength():
		if b[0] != CompressedEvenTag && b[0] != CompressedOddTag {
			return Point{}, fmt.Errorf("%w: unexpected prefix 0x%02x", ErrPointNotOnCurve, b[0])
		}
		return decompress(c, b[1:], uint(b[0]&1))
	case c.UncompressedLength():
		if b[0] != UncompressedPointTag {
			return Point{}, fmt.Errorf("%w: unexpected prefix 0x%02x", ErrPointNotOnCurve, b[0])
		}
		x := new(big.Int).SetBytes(b[1 : 1+c.byteLen])
		y := new(big.Int).SetBytes(b[1+c.byteLen:])
		if !c.IsOnCurve(x, y) {
			return Point{}, ErrPointNotOnCurve
		}
		return Point{X: x, Y: y}, nil
	default:
		return Point{}, fmt.Errorf("%w: got %d bytes for %s, want %d or %d",
			ErrInvalidEncodingLength, len(b), c.ID, c.CompressedLength(), c.UncompressedLength())
	}
}

// decompress recovers y from x and the requested parity.
func decompress(c *Curve, xb []byte, parity uint) (Point, error) {
	x := new(big.Int).SetBytes(xb)
	if x.Cmp(c.P) >= 0 {
		return Point{}, fmt.Errorf("%w: x out of field range", ErrPointNotOnCurve)
	}

	rhs := c.polynomial(x)
	if !c.isSquare(rhs) {
		return Point{}, fmt.Errorf("%w: x has no matching y", ErrPointNotOnCurve)
	}

	y := c.sqrt(rhs)
	if y.Bit(0) != parity {
		y.Sub(c.P, y)
		y.Mod(y, c.P)
	}
	if !c.IsOnCurve(x, y) {
		return Point{}, ErrPointNotOnCurve
	}
	return Point{X: x, Y: y}, nil
}

// CompressPublicKey converts an encoded public key of any supported curve to
// its compressed form.
func CompressPublicKey(key []byte) ([]byte, error) {
	c, p, err := decodePublicKey(key)
	if err != nil {
		return nil, err
	}
	return Compress(c, p), nil
}

// DecompressPublicKey converts an encoded public key of any supported curve
// to its uncompressed form.
func DecompressPublicKey(key []byte) ([]byte, error) {
	c, p, err := decodePublicKey(key)
	if err != nil {
		return nil, err
	}
	return Uncompress(c, p), nil
}

func decodePublicKey(key []byte) (*Curve, Point, error) {
	id, err := detectPublicKey(key)
	if err != nil {
		return nil, Point{}, err
	}
	c := registry[id]
	p, err := Decompress(c, key)
	if err != nil {
		return nil, Point{}, err
	}
	return c, p, nil
}

// PublicKeyFromXY encodes raw affine coordinates as an uncompressed public
// key after checking the point. Short coordinates are left-padded.
func PublicKeyFromXY(id CurveID, x, y []byte) ([]byte, error) {
	c, err := curveFor(id)
	if err != nil {
		return nil, err
	}
	if len(x) > c.byteLen || len(y) > c.byteLen {
		return nil, fmt.Errorf("%w: coordinate longer than %d bytes", ErrInvalidEncodingLength, c.byteLen)
	}

	p := Point{X: new(big.Int).SetBytes(x), Y: new(big.Int).SetBytes(y)}
	if !c.IsOnCurve(p.X, p.Y) {
		return nil, ErrPointNotOnCurve
	}

	out := make([]byte, 0, c.UncompressedLength())
	out = append(out, UncompressedPointTag)
	out = append(out, internal.ZeroPad(x, c.byteLen)...)
	out = append(out, internal.ZeroPad(y, c.byteLen)...)
	return out, nil
}
