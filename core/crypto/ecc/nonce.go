package ecc

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"math/big"

	"github.com/kochabx/eckit/core/crypto/hmac"
	"github.com/kochabx/eckit/core/crypto/internal"
)

// randomScalar returns a uniform scalar in [1, n-1].
func randomScalar(r io.Reader, c *Curve) (*big.Int, error) {
	bound := new(big.Int).Sub(c.N, bigOne)
	k, err := rand.Int(r, bound)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return k.Add(k, bigOne), nil
}

// nonceSource yields successive signing nonces for one signature.
type nonceSource interface {
	next() (*big.Int, error)
}

type randomNonces struct {
	r io.Reader
	c *Curve
}

func (s randomNonces) next() (*big.Int, error) {
	return randomScalar(s.r, s.c)
}

// rfc6979Nonces implements the nonce generation of RFC 6979 §3.2.
type rfc6979Nonces struct {
	c    *Curve
	drbg *hmac.DRBG
	buf  []byte
}

func newRFC6979Nonces(c *Curve, d *big.Int, digest []byte) (*rfc6979Nonces, error) {
	rlen := (c.N.BitLen() + 7) / 8
	x := internal.PadInt(d, rlen)
	defer internal.Wipe(x)

	drbg, err := hmac.NewDRBG(nonceHash(c), x, bits2octets(c, digest, rlen))
	if err != nil {
		return nil, err
	}
	return &rfc6979Nonces{c: c, drbg: drbg, buf: make([]byte, rlen)}, nil
}

func (s *rfc6979Nonces) next() (*big.Int, error) {
	for {
		s.drbg.Read(s.buf)
		k := bits2int(s.c, s.buf)
		if s.c.inRange(k) {
			return k, nil
		}
	}
}

// nonceHash is the HMAC hash paired with each curve.
func nonceHash(c *Curve) func() hash.Hash {
	if c.BitSize > 256 {
		return sha512.New384
	}
	return sha256.New
}

// bits2int interprets b as a big-endian integer truncated to bitlen(n) bits.
func bits2int(c *Curve, b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if excess := len(b)*8 - c.N.BitLen(); excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v
}

func bits2octets(c *Curve, b []byte, rlen int) []byte {
	z := bits2int(c, b)
	z.Mod(z, c.N)
	return internal.PadInt(z, rlen)
}
