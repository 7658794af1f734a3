package goppa

import (
	"fmt"

	"github.com/sqf-ice/pqcore/gf2mat"
	"github.com/sqf-ice/pqcore/poly"
	"github.com/sqf-ice/pqcore/utils"
)

// SyndromeDecode runs Patterson's algorithm on a t*m-bit GF(2) syndrome
// vector, returning the length-n error vector. If T (the inverse of the
// syndrome polynomial mod g) cannot be computed, the syndrome does not
// belong to this code and DecodingError is returned rather than a silent
// best-effort result.
func (c *Code) SyndromeDecode(syndrome *gf2mat.Vector) (*gf2mat.Vector, error) {
	if syndrome.Length() != c.t*c.field.M() {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w: syndrome length %d does not match t*m=%d", utils.ErrInvalidInput, syndrome.Length(), c.t*c.field.M())
	}

	if syndrome.IsZero() {
		return gf2mat.NewVector(c.n), nil
	}

	sPoly, err := c.syndromeToPoly(syndrome)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}

	tPoly, err := c.g.ModInverse(sPoly)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w: syndrome is not invertible mod g", utils.ErrDecoding)
	}

	x, err := poly.Monomial(c.field, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}
	sum := tPoly.Add(x)
	sumMod, err := sum.Mod(c.g)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}
	tau := sumMod.ModSquareRootMatrix(c.ring.SquareRootMatrix())

	a, b, err := tau.ModPolynomialToFraction(c.g)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}

	a2 := a.Multiply(a)
	b2 := b.Multiply(b)
	sigma := a2.Add(b2.MultWithMonomial(1))

	if sigma.IsZero() {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w: error-locator polynomial is zero", utils.ErrDecoding)
	}
	leadInv, err := c.field.Inverse(sigma.Coeff(sigma.Degree()))
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}
	sigmaNorm, err := sigma.MultWithElement(leadInv)
	if err != nil {
		return nil, fmt.Errorf("goppa.Code.SyndromeDecode: %w", err)
	}

	errVec := gf2mat.NewVector(c.n)
	for j := 0; j < c.n; j++ {
		if sigmaNorm.EvaluateAt(uint32(j)) == 0 {
			errVec.SetBit(j)
		}
	}
	return errVec, nil
}

// syndromeToPoly reconstructs the syndrome polynomial s(X) = sum_j
// e_j/(X-alpha_j) mod g from a t*m-bit GF(2) syndrome vector, inverting
// CreateCanonicalCheckMatrix's bit layout exactly rather than going through
// Vector.ToExtensionFieldVector's generic (and differently-ordered) LSB-first
// reading.
//
// CreateCanonicalCheckMatrix places bit u (u=0..m-1, LSB first) of block i's
// GF(2^m) entry at row (i+1)*m-u-1, i.e. within block i (rows [i*m,
// (i+1)*m)) row position q = row-i*m holds bit u = m-1-q - the reverse of
// position-increasing-is-bit-increasing. Block i itself holds the
// coefficient of X^(t-1-i) in s(X), since the canonical construction's first
// row (i=0) is g(j)^-1, which is s(X)'s leading (X^(t-1)) coefficient, not
// its constant term.
func (c *Code) syndromeToPoly(syndrome *gf2mat.Vector) (*poly.Poly, error) {
	m := c.field.M()
	t := c.t
	if syndrome.Length() != t*m {
		return nil, fmt.Errorf("goppa.Code.syndromeToPoly: %w: syndrome length %d does not match t*m=%d", utils.ErrInvalidInput, syndrome.Length(), t*m)
	}

	coeffs := make([]uint32, t)
	for i := 0; i < t; i++ {
		var elem uint32
		for q := 0; q < m; q++ {
			u := m - 1 - q
			if syndrome.Bit(i*m+q) != 0 {
				elem |= 1 << uint(u)
			}
		}
		coeffs[t-1-i] = elem
	}
	return poly.New(c.field, coeffs)
}
