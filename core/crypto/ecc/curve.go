package ecc

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// CurveID identifies a supported curve. Its value is the curve's bit length.
type CurveID int

const (
	None      CurveID = 0
	Secp128r1 CurveID = 128
	Secp192r1 CurveID = 192
	Secp256r1 CurveID = 256
	Secp384r1 CurveID = 384
)

// String returns the SEC 2 name of the curve.
func (id CurveID) String() string {
	switch id {
	case None:
		return "none"
	case Secp128r1:
		return "secp128r1"
	case Secp192r1:
		return "secp192r1"
	case Secp256r1:
		return "secp256r1"
	case Secp384r1:
		return "secp384r1"
	default:
		return "unknown(" + strconv.Itoa(int(id)) + ")"
	}
}

// Supported reports whether id names one of the four curves.
func (id CurveID) Supported() bool {
	_, ok := registry[id]
	return ok
}

// ParseCurveID accepts a curve name ("secp256r1", "P-256", "prime256v1")
// or a bit length ("256").
func ParseCurveID(s string) (CurveID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "secp128r1", "128":
		return Secp128r1, nil
	case "secp192r1", "prime192v1", "p-192", "192":
		return Secp192r1, nil
	case "secp256r1", "prime256v1", "p-256", "256":
		return Secp256r1, nil
	case "secp384r1", "p-384", "384":
		return Secp384r1, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCurve, s)
}

// Curve holds the domain parameters of a short Weierstrass curve
// y² = x³ + ax + b over GF(p). Values are shared and must not be modified.
type Curve struct {
	ID      CurveID
	BitSize int
	P       *big.Int // field prime
	A, B    *big.Int // curve coefficients
	Gx, Gy  *big.Int // base point
	N       *big.Int // order of the base point
	H       int      // cofactor

	byteLen   int
	aIsMinus3 bool
	pMinus2   *big.Int // field inversion exponent
	nMinus2   *big.Int // scalar inversion exponent
	sqrtExp   *big.Int // (p+1)/4
	eulerExp  *big.Int // (p-1)/2
}

// ByteLen returns ceil(bits/8), the size of a scalar or coordinate.
func (c *Curve) ByteLen() int {
	return c.byteLen
}

// Generator returns the base point G.
func (c *Curve) Generator() Point {
	return Point{X: new(big.Int).Set(c.Gx), Y: new(big.Int).Set(c.Gy)}
}

// PrivateKeyLength is the raw private key size in bytes.
func (c *Curve) PrivateKeyLength() int { return c.byteLen }

// CompressedLength is the size of a compressed public key.
func (c *Curve) CompressedLength() int { return c.byteLen + 1 }

// UncompressedLength is the size of an uncompressed public key.
func (c *Curve) UncompressedLength() int { return 2*c.byteLen + 1 }

func (c *Curve) String() string {
	return c.ID.String()
}

var registry = map[CurveID]*Curve{}

// ordered lists the supported curves in ascending bit order.
var ordered = []CurveID{Secp128r1, Secp192r1, Secp256r1, Secp384r1}

func init() {
	p256 := elliptic.P256().Params()
	p384 := elliptic.P384().Params()

	register(newCurve(Secp128r1,
		hexToInt("FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF"),
		hexToInt("FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFC"),
		hexToInt("E87579C11079F43DD824993C2CEE5ED3"),
		hexToInt("161FF7528B899B2D0C28607CA52C5B86"),
		hexToInt("CF5AC8395BAFEB13C02DA292DDED7A83"),
		hexToInt("FFFFFFFE0000000075A30D1B9038A115"),
	))
	register(newCurve(Secp192r1,
		hexToInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF"),
		hexToInt("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFC"),
		hexToInt("64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1"),
		hexToInt("188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012"),
		hexToInt("07192B95FFC8DA78631011ED6B24CDD573F977A11E794811"),
		hexToInt("FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831"),
	))
	register(newCurve(Secp256r1,
		p256.P, minus3(p256.P), p256.B, p256.Gx, p256.Gy, p256.N,
	))
	register(newCurve(Secp384r1,
		p384.P, minus3(p384.P), p384.B, p384.Gx, p384.Gy, p384.N,
	))
}

func register(c *Curve) {
	if !c.IsOnCurve(c.Gx, c.Gy) {
		panic("ecc: generator of " + c.ID.String() + " is not on the curve")
	}
	registry[c.ID] = c
}

func newCurve(id CurveID, p, a, b, gx, gy, n *big.Int) *Curve {
	one := big.NewInt(1)
	two := big.NewInt(2)

	sqrtExp := new(big.Int).Add(p, one)
	sqrtExp.Rsh(sqrtExp, 2)
	eulerExp := new(big.Int).Sub(p, one)
	eulerExp.Rsh(eulerExp, 1)

	return &Curve{
		ID:        id,
		BitSize:   int(id),
		P:         new(big.Int).Set(p),
		A:         new(big.Int).Set(a),
		B:         new(big.Int).Set(b),
		Gx:        new(big.Int).Set(gx),
		Gy:        new(big.Int).Set(gy),
		N:         new(big.Int).Set(n),
		H:         1,
		byteLen:   (int(id) + 7) / 8,
		aIsMinus3: new(big.Int).Sub(p, a).Cmp(big.NewInt(3)) == 0,
		pMinus2:   new(big.Int).Sub(p, two),
		nMinus2:   new(big.Int).Sub(n, two),
		sqrtExp:   sqrtExp,
		eulerExp:  eulerExp,
	}
}

func minus3(p *big.Int) *big.Int {
	return new(big.Int).Sub(p, big.NewInt(3))
}

// hexToInt panics on malformed input; it is only used for package constants.
func hexToInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ecc: invalid hex in curve parameter: " + s)
	}
	return n
}

// ParametersFor returns the domain parameters of a supported curve.
func ParametersFor(id CurveID) (*Curve, error) {
	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, id)
	}
	return c, nil
}

// Curves lists the supported curves in ascending bit order.
func Curves() []CurveID {
	out := make([]CurveID, len(ordered))
	copy(out, ordered)
	return out
}

// curveFor is ParametersFor with None reported as ErrCurveRequired.
func curveFor(id CurveID) (*Curve, error) {
	if id == None {
		return nil, ErrCurveRequired
	}
	return ParametersFor(id)
}
