package ecc

import "math/big"

// Point is an affine curve point. The zero value is the point at infinity.
type Point struct {
	X, Y *big.Int
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.X == nil || p.Y == nil
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// IsOnCurve reports whether (x, y) is a point of c with both coordinates
// reduced mod p.
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 || y.Sign() < 0 || y.Cmp(c.P) >= 0 {
		return false
	}

	// y² = x³ + ax + b
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.P)
	return c.polynomial(x).Cmp(y2) == 0
}

// Add returns p + q.
func (c *Curve) Add(p, q Point) Point {
	return c.toAffine(c.addJacobian(c.toJacobian(p), c.toJacobian(q)))
}

// Double returns 2p.
func (c *Curve) Double(p Point) Point {
	return c.toAffine(c.doubleJacobian(c.toJacobian(p)))
}

// Neg returns -p.
func (c *Curve) Neg(p Point) Point {
	if p.IsInfinity() {
		return Point{}
	}
	y := new(big.Int).Sub(c.P, p.Y)
	y.Mod(y, c.P)
	return Point{X: new(big.Int).Set(p.X), Y: y}
}

// ScalarMult returns k·p using a Montgomery ladder. The ladder always runs
// bitlen(n) steps and picks its registers by index, so the sequence of
// additions and doublings is the same for every scalar of that size.
func (c *Curve) ScalarMult(p Point, k *big.Int) Point {
	if p.IsInfinity() {
		return Point{}
	}
	if k.Sign() < 0 || k.BitLen() > c.N.BitLen() {
		k = new(big.Int).Mod(k, c.N)
	}

	r := [2]jacobian{infinity(), c.toJacobian(p)}
	for i := c.N.BitLen() - 1; i >= 0; i-- {
		b := k.Bit(i)
		r[1-b] = c.addJacobian(r[0], r[1])
		r[b] = c.doubleJacobian(r[b])
	}
	return c.toAffine(r[0])
}

// ScalarBaseMult returns k·G.
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	return c.ScalarMult(Point{X: c.Gx, Y: c.Gy}, k)
}

// jacobian is a point (X:Y:Z) with x = X/Z² and y = Y/Z³. Z = 0 encodes
// the point at infinity.
type jacobian struct {
	x, y, z *big.Int
}

func infinity() jacobian {
	return jacobian{x: new(big.Int), y: new(big.Int), z: new(big.Int)}
}

func (c *Curve) toJacobian(p Point) jacobian {
	if p.IsInfinity() {
		return infinity()
	}
	return jacobian{x: new(big.Int).Set(p.X), y: new(big.Int).Set(p.Y), z: big.NewInt(1)}
}

func (c *Curve) toAffine(j jacobian) Point {
	if j.z.Sign() == 0 {
		return Point{}
	}

	zinv := c.fieldInv(j.z)
	zinvsq := new(big.Int).Mul(zinv, zinv)

	x := new(big.Int).Mul(j.x, zinvsq)
	x.Mod(x, c.P)
	zinvsq.Mul(zinvsq, zinv)
	y := new(big.Int).Mul(j.y, zinvsq)
	y.Mod(y, c.P)
	return Point{X: x, Y: y}
}

// addJacobian returns p + q.
// See https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (c *Curve) addJacobian(p, q jacobian) jacobian {
	if p.z.Sign() == 0 {
		return jacobian{x: new(big.Int).Set(q.x), y: new(big.Int).Set(q.y), z: new(big.Int).Set(q.z)}
	}
	if q.z.Sign() == 0 {
		return jacobian{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y), z: new(big.Int).Set(p.z)}
	}

	z1z1 := new(big.Int).Mul(p.z, p.z)
	z1z1.Mod(z1z1, c.P)
	z2z2 := new(big.Int).Mul(q.z, q.z)
	z2z2.Mod(z2z2, c.P)

	u1 := new(big.Int).Mul(p.x, z2z2)
	u1.Mod(u1, c.P)
	u2 := new(big.Int).Mul(q.x, z1z1)
	u2.Mod(u2, c.P)
	h := new(big.Int).Sub(u2, u1)
	xEqual := h.Sign() == 0
	if h.Sign() == -1 {
		h.Add(h, c.P)
	}
	i := new(big.Int).Lsh(h, 1)
	i.Mul(i, i)
	j := new(big.Int).Mul(h, i)

	s1 := new(big.Int).Mul(p.y, q.z)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, c.P)
	s2 := new(big.Int).Mul(q.y, p.z)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, c.P)
	r := new(big.Int).Sub(s2, s1)
	if r.Sign() == -1 {
		r.Add(r, c.P)
	}
	yEqual := r.Sign() == 0
	if xEqual && yEqual {
		return c.doubleJacobian(p)
	}
	r.Lsh(r, 1)
	v := new(big.Int).Mul(u1, i)

	x3 := new(big.Int).Set(r)
	x3.Mul(x3, x3)
	x3.Sub(x3, j)
	x3.Sub(x3, v)
	x3.Sub(x3, v)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Set(r)
	v.Sub(v, x3)
	y3.Mul(y3, v)
	s1.Mul(s1, j)
	s1.Lsh(s1, 1)
	y3.Sub(y3, s1)
	y3.Mod(y3, c.P)

	z3 := new(big.Int).Add(p.z, q.z)
	z3.Mul(z3, z3)
	z3.Sub(z3, z1z1)
	z3.Sub(z3, z2z2)
	z3.Mul(z3, h)
	z3.Mod(z3, c.P)

	return jacobian{x: x3, y: y3, z: z3}
}

// doubleJacobian returns 2p.
// See https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2001-b
func (c *Curve) doubleJacobian(p jacobian) jacobian {
	delta := new(big.Int).Mul(p.z, p.z)
	delta.Mod(delta, c.P)
	gamma := new(big.Int).Mul(p.y, p.y)
	gamma.Mod(gamma, c.P)

	var alpha *big.Int
	if c.aIsMinus3 {
		// for a = -3, 3x² + a·delta² = 3(x+delta)(x-delta)
		alpha = new(big.Int).Sub(p.x, delta)
		alpha2 := new(big.Int).Add(p.x, delta)
		alpha.Mul(alpha, alpha2)
		alpha2.Set(alpha)
		alpha.Lsh(alpha, 1)
		alpha.Add(alpha, alpha2)
	} else {
		// M = 3x² + a·delta²
		x2 := new(big.Int).Mul(p.x, p.x)
		alpha = new(big.Int).Lsh(x2, 1)
		alpha.Add(alpha, x2)
		d2 := new(big.Int).Mul(delta, delta)
		d2.Mul(d2, c.A)
		alpha.Add(alpha, d2)
	}
	alpha.Mod(alpha, c.P)

	beta4 := new(big.Int).Mul(p.x, gamma)
	beta4.Lsh(beta4, 2)
	beta4.Mod(beta4, c.P)

	// X3 = alpha² - 8·beta
	x3 := new(big.Int).Mul(alpha, alpha)
	beta8 := new(big.Int).Lsh(beta4, 1)
	x3.Sub(x3, beta8)
	x3.Mod(x3, c.P)

	// Z3 = 2·Y1·Z1
	z3 := new(big.Int).Mul(p.y, p.z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, c.P)

	// Y3 = alpha·(4·beta - X3) - 8·gamma²
	beta4.Sub(beta4, x3)
	y3 := alpha.Mul(alpha, beta4)
	gamma.Mul(gamma, gamma)
	gamma.Lsh(gamma, 3)
	y3.Sub(y3, gamma)
	y3.Mod(y3, c.P)

	return jacobian{x: x3, y: y3, z: z3}
}
