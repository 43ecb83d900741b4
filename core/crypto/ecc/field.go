package ecc

import "math/big"

// fieldInv returns x⁻¹ mod p as x^(p-2).
func (c *Curve) fieldInv(x *big.Int) *big.Int {
	return new(big.Int).Exp(x, c.pMinus2, c.P)
}

// scalarInv returns k⁻¹ mod n as k^(n-2). The exponent is public and fixed,
// so the square-and-multiply sequence does not depend on k.
func (c *Curve) scalarInv(k *big.Int) *big.Int {
	return new(big.Int).Exp(k, c.nMinus2, c.N)
}

// polynomial returns x³ + ax + b mod p.
func (c *Curve) polynomial(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.A) // x² + a
	r.Mul(r, x)   // x³ + ax
	r.Add(r, c.B) // x³ + ax + b
	return r.Mod(r, c.P)
}

// isSquare applies Euler's criterion: r is a square mod p iff r = 0 or
// r^((p-1)/2) = 1.
func (c *Curve) isSquare(r *big.Int) bool {
	if r.Sign() == 0 {
		return true
	}
	return new(big.Int).Exp(r, c.eulerExp, c.P).Cmp(bigOne) == 0
}

// sqrt returns a square root of r mod p. All supported primes are 3 mod 4,
// so the root is r^((p+1)/4). The caller must check isSquare first.
func (c *Curve) sqrt(r *big.Int) *big.Int {
	return new(big.Int).Exp(r, c.sqrtExp, c.P)
}

// inRange reports whether 1 <= k < n.
func (c *Curve) inRange(k *big.Int) bool {
	return k.Sign() > 0 && k.Cmp(c.N) < 0
}

var bigOne = big.NewInt(1)
