package ecc

import (
	"encoding/base64"
	"fmt"
	"math/big"
)

// Signature is an ECDSA signature (r, s).
type Signature struct {
	R, S *big.Int
}

// Bytes returns the raw r || s encoding, each half ByteLen bytes.
func (sig *Signature) Bytes(c *Curve) []byte {
	out := make([]byte, 2*c.byteLen)
	sig.R.FillBytes(out[:c.byteLen])
	sig.S.FillBytes(out[c.byteLen:])
	return out
}

// ParseSignature decodes a raw r || s signature for curve c. Range checks
// on r and s are left to Verify.
func ParseSignature(c *Curve, b []byte) (*Signature, error) {
	if len(b) != 2*c.byteLen {
		return nil, fmt.Errorf("%w: got %d bytes for %s, want %d",
			ErrInvalidSignature, len(b), c.ID, 2*c.byteLen)
	}
	return &Signature{
		R: new(big.Int).SetBytes(b[:c.byteLen]),
		S: new(big.Int).SetBytes(b[c.byteLen:]),
	}, nil
}

// HashLength is the digest size Sign and Verify accept.
func (x *Crypto) HashLength() int { return x.curve.byteLen }

// SignatureLength is the size of a raw r || s signature.
func (x *Crypto) SignatureLength() int { return 2 * x.curve.byteLen }

// Digest hashes a message into a HashLength digest for Sign and Verify:
// SHA-256 for curves up to 256 bits and SHA-384 for secp384r1, keeping the
// leftmost HashLength bytes.
func (x *Crypto) Digest(message []byte) []byte {
	h := nonceHash(x.curve)()
	h.Write(message)
	return h.Sum(nil)[:x.curve.byteLen]
}

// Sign signs a digest of exactly HashLength bytes with the private key.
// Nonces come from the secure random source, or from RFC 6979 when the
// context was built WithNonce(NonceDeterministic). Nonces giving r = 0 or
// s = 0 are discarded and the next one is tried.
func (x *Crypto) Sign(hash []byte) (*Signature, error) {
	if x.d == nil {
		return nil, ErrMissingPrivateKey
	}
	if len(hash) != x.HashLength() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrHashLengthMismatch, len(hash), x.HashLength())
	}

	c := x.curve
	var nonces nonceSource = randomNonces{r: x.opts.rand, c: c}
	if x.opts.nonce == NonceDeterministic {
		det, err := newRFC6979Nonces(c, x.d, hash)
		if err != nil {
			return nil, err
		}
		defer det.drbg.Reset()
		nonces = det
	}

	e := bits2int(c, hash)
	for {
		k, err := nonces.next()
		if err != nil {
			return nil, err
		}

		// r = (k·G).x mod n
		r := c.ScalarBaseMult(k).X
		if r == nil {
			continue
		}
		r = new(big.Int).Mod(r, c.N)
		if r.Sign() == 0 {
			continue
		}

		// s = k⁻¹(e + r·d) mod n
		s := new(big.Int).Mul(r, x.d)
		s.Add(s, e)
		s.Mul(s, c.scalarInv(k))
		s.Mod(s, c.N)
		k.SetInt64(0)
		if s.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: s}, nil
	}
}

// SignBytes is Sign returning the raw r || s encoding.
func (x *Crypto) SignBytes(hash []byte) ([]byte, error) {
	sig, err := x.Sign(hash)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(x.curve), nil
}

// SignBase64 signs a base64 encoded digest and returns a base64 encoded raw
// signature.
func (x *Crypto) SignBase64(hash string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashLengthMismatch, err)
	}
	sig, err := x.SignBytes(raw)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks sig over a digest of exactly HashLength bytes against the
// public key. A forged or mismatched signature, including one with r or s
// outside [1, n-1], yields false and no error.
func (x *Crypto) Verify(sig *Signature, hash []byte) (bool, error) {
	if !x.HasPublicKey() {
		return false, ErrMissingPublicKey
	}
	if len(hash) != x.HashLength() {
		return false, fmt.Errorf("%w: got %d bytes, want %d", ErrHashLengthMismatch, len(hash), x.HashLength())
	}

	c := x.curve
	if sig == nil || sig.R == nil || sig.S == nil || !c.inRange(sig.R) || !c.inRange(sig.S) {
		return false, nil
	}

	e := bits2int(c, hash)
	w := c.scalarInv(sig.S)

	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, c.N)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, c.N)

	p := c.Add(c.ScalarBaseMult(u1), c.ScalarMult(x.q, u2))
	if p.IsInfinity() {
		return false, nil
	}

	v := new(big.Int).Mod(p.X, c.N)
	return v.Cmp(sig.R) == 0, nil
}

// VerifyBytes is Verify over a raw r || s signature.
func (x *Crypto) VerifyBytes(sig, hash []byte) (bool, error) {
	s, err := ParseSignature(x.curve, sig)
	if err != nil {
		return false, err
	}
	return x.Verify(s, hash)
}

// VerifyBase64 is Verify over a base64 encoded raw signature and digest.
func (x *Crypto) VerifyBase64(sig, hash string) (bool, error) {
	rawSig, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	rawHash, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHashLengthMismatch, err)
	}
	return x.VerifyBytes(rawSig, rawHash)
}
