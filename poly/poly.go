// Package poly implements dense polynomial arithmetic over GF(2^m)[X]
// (PolynomialGF2mSmallM), together with the squaring/square-root matrix
// construction used by Patterson decoding (PolynomialRingGF2m).
package poly

import (
	"fmt"

	"github.com/sqf-ice/pqcore/gf2m"
	"github.com/sqf-ice/pqcore/utils"
)

// Poly is a dense polynomial over GF(2^m), coefficients indexed by exponent
// (coeffs[0] is the constant term). The degree is recomputed whenever
// coefficients are mutated in place; canonical form trims trailing zero
// coefficients except that the zero polynomial keeps a single zero entry.
type Poly struct {
	field  *gf2m.Field
	coeffs []uint32
	degree int // highest i with coeffs[i] != 0, or -1 for the zero polynomial
}

// New constructs a polynomial from a coefficient slice (coeffs[0] is the
// constant term), copying the slice and validating every coefficient lies in
// the field.
func New(field *gf2m.Field, coeffs []uint32) (*Poly, error) {
	for i, c := range coeffs {
		if !field.IsElement(c) {
			return nil, fmt.Errorf("poly.New: %w: coefficient %d at index %d is not in GF(2^%d)", utils.ErrInvalidInput, c, i, field.M())
		}
	}
	c := utils.CloneUint32s(coeffs)
	if len(c) == 0 {
		c = []uint32{0}
	}
	p := &Poly{field: field, coeffs: c}
	p.recomputeDegree()
	return p, nil
}

// Zero returns the zero polynomial over field.
func Zero(field *gf2m.Field) *Poly {
	p, _ := New(field, []uint32{0})
	return p
}

// Monomial returns the single-term polynomial coeff*X^k.
func Monomial(field *gf2m.Field, k int, coeff uint32) (*Poly, error) {
	c := make([]uint32, k+1)
	c[k] = coeff
	return New(field, c)
}

func (p *Poly) recomputeDegree() {
	d := len(p.coeffs) - 1
	for d >= 0 && p.coeffs[d] == 0 {
		d--
	}
	p.degree = d
}

// Field returns the polynomial's underlying field.
func (p *Poly) Field() *gf2m.Field { return p.field }

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Poly) Degree() int { return p.degree }

// IsZero reports whether the polynomial is the zero polynomial.
func (p *Poly) IsZero() bool { return p.degree < 0 }

// Coeff returns the coefficient of X^i, or 0 if i exceeds the backing slice.
func (p *Poly) Coeff(i int) uint32 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Clone returns an independent copy of p.
func (p *Poly) Clone() *Poly {
	return &Poly{field: p.field, coeffs: utils.CloneUint32s(p.coeffs), degree: p.degree}
}

// EvaluateAt evaluates p at field element e via Horner's scheme in Θ(deg).
func (p *Poly) EvaluateAt(e uint32) uint32 {
	if p.IsZero() {
		return 0
	}
	result := p.coeffs[p.degree]
	for i := p.degree - 1; i >= 0; i-- {
		result = p.field.Add(p.field.Mult(result, e), p.coeffs[i])
	}
	return result
}

// Add returns p + other, the coefficient-wise XOR after aligning lengths.
// Addition is commutative and a+a=0 in characteristic 2.
func (p *Poly) Add(other *Poly) *Poly {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = p.field.Add(p.Coeff(i), other.Coeff(i))
	}
	res, _ := New(p.field, out)
	return res
}

// AddToThis adds other into p in place, mutating p's coefficient buffer and
// recomputing its degree.
func (p *Poly) AddToThis(other *Poly) {
	n := len(p.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	if n > len(p.coeffs) {
		grown := make([]uint32, n)
		copy(grown, p.coeffs)
		p.coeffs = grown
	}
	for i := 0; i < len(other.coeffs); i++ {
		p.coeffs[i] = p.field.Add(p.coeffs[i], other.coeffs[i])
	}
	p.recomputeDegree()
}

// MultWithElement returns x*p. Returns the zero polynomial if x=0, a clone
// of p if x=1; fails with ErrArithmetic if x is not a field element.
func (p *Poly) MultWithElement(x uint32) (*Poly, error) {
	if !p.field.IsElement(x) {
		return nil, fmt.Errorf("poly.Poly.MultWithElement: %w: %d is not in GF(2^%d)", utils.ErrArithmetic, x, p.field.M())
	}
	if x == 0 {
		return Zero(p.field), nil
	}
	if x == 1 {
		return p.Clone(), nil
	}
	out := make([]uint32, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = p.field.Mult(c, x)
	}
	res, _ := New(p.field, out)
	return res, nil
}

// MultThisWithElement mutates p in place, the in-place counterpart of
// MultWithElement.
func (p *Poly) MultThisWithElement(x uint32) error {
	if !p.field.IsElement(x) {
		return fmt.Errorf("poly.Poly.MultThisWithElement: %w: %d is not in GF(2^%d)", utils.ErrArithmetic, x, p.field.M())
	}
	for i, c := range p.coeffs {
		p.coeffs[i] = p.field.Mult(c, x)
	}
	p.recomputeDegree()
	return nil
}

// MultWithMonomial returns p * X^k, a left-shift of coefficients by k
// positions.
func (p *Poly) MultWithMonomial(k int) *Poly {
	if p.IsZero() || k == 0 {
		return p.Clone()
	}
	out := make([]uint32, len(p.coeffs)+k)
	copy(out[k:], p.coeffs)
	res, _ := New(p.field, out)
	return res
}

// Multiply returns p*other via Karatsuba multiplication, recursing down to
// a constant-multiply base case at degree 0. The split point, when operand
// degrees are equal, uses ceil((d1+1)/2) so the result matches schoolbook
// multiplication bit-for-bit.
func (p *Poly) Multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return Zero(p.field)
	}
	if p.degree == 0 {
		res, _ := other.MultWithElement(p.coeffs[0])
		return res
	}
	if other.degree == 0 {
		res, _ := p.MultWithElement(other.coeffs[0])
		return res
	}

	d1, d2 := p.degree, other.degree
	split := (d1 + 2) / 2 // ceil((d1+1)/2)
	if d2 < split {
		split = d2 + 1
		if split > d1+1 {
			split = d1 + 1
		}
	}
	if split <= 0 {
		split = 1
	}

	pLo, pHi := p.splitAt(split)
	oLo, oHi := other.splitAt(split)

	z0 := pLo.Multiply(oLo)
	z2 := pHi.Multiply(oHi)
	sumP := pLo.Add(pHi)
	sumO := oLo.Add(oHi)
	z1 := sumP.Multiply(sumO)
	z1 = z1.Add(z0).Add(z2)

	result := z0.Clone()
	result.AddToThis(z1.MultWithMonomial(split))
	result.AddToThis(z2.MultWithMonomial(2 * split))
	return result
}

// splitAt splits p into (low, high) such that p = low + high*X^split.
func (p *Poly) splitAt(split int) (*Poly, *Poly) {
	if split >= len(p.coeffs) {
		lo, _ := New(p.field, p.coeffs)
		return lo, Zero(p.field)
	}
	loCoeffs := utils.CloneUint32s(p.coeffs[:split])
	hiCoeffs := utils.CloneUint32s(p.coeffs[split:])
	lo, _ := New(p.field, loCoeffs)
	hi, _ := New(p.field, hiCoeffs)
	return lo, hi
}

// Div returns (q, r) with p = q*f + r and deg(r) < deg(f), by schoolbook
// polynomial long division. Fails with ErrArithmetic if f is the zero
// polynomial.
func (p *Poly) Div(f *Poly) (q, r *Poly, err error) {
	if f.IsZero() {
		return nil, nil, fmt.Errorf("poly.Poly.Div: %w: division by zero polynomial", utils.ErrArithmetic)
	}
	field := p.field
	remainder := p.Clone()
	qCoeffs := make([]uint32, 0)
	if remainder.degree >= f.degree {
		qCoeffs = make([]uint32, remainder.degree-f.degree+1)
	}

	lead, err := field.Inverse(f.coeffs[f.degree])
	if err != nil {
		return nil, nil, fmt.Errorf("poly.Poly.Div: %w", err)
	}

	for remainder.degree >= f.degree {
		shift := remainder.degree - f.degree
		factor := field.Mult(remainder.coeffs[remainder.degree], lead)
		qCoeffs[shift] = factor

		term, _ := f.MultWithElement(factor)
		term = term.MultWithMonomial(shift)
		remainder.AddToThis(term)
	}

	qPoly, _ := New(field, qCoeffs)
	return qPoly, remainder, nil
}

// Mod returns p mod f, the remainder of Div.
func (p *Poly) Mod(f *Poly) (*Poly, error) {
	_, r, err := p.Div(f)
	if err != nil {
		return nil, fmt.Errorf("poly.Poly.Mod: %w", err)
	}
	return r, nil
}

// GCD returns gcd(p, f) via the Euclidean algorithm.
func (p *Poly) GCD(f *Poly) (*Poly, error) {
	a, b := p.Clone(), f.Clone()
	for !b.IsZero() {
		_, r, err := a.Div(b)
		if err != nil {
			return nil, fmt.Errorf("poly.Poly.GCD: %w", err)
		}
		a, b = b, r
	}
	return a, nil
}

// ModMultiply returns a*b mod p (p acting as the modulus).
func (p *Poly) ModMultiply(a, b *Poly) (*Poly, error) {
	prod := a.Multiply(b)
	return prod.Mod(p)
}

// ModInverse returns a^-1 mod p via the extended Euclidean algorithm run
// through ModPolynomialToFraction.
func (p *Poly) ModInverse(a *Poly) (*Poly, error) {
	aMod, err := a.Mod(p)
	if err != nil {
		return nil, fmt.Errorf("poly.Poly.ModInverse: %w", err)
	}
	one, _ := New(p.field, []uint32{1})
	num, den, err := p.modPolynomialToFractionFull(aMod, one, 0)
	if err != nil {
		return nil, fmt.Errorf("poly.Poly.ModInverse: %w", err)
	}
	if num.degree != 0 || num.coeffs[0] == 0 {
		return nil, fmt.Errorf("poly.Poly.ModInverse: %w: %v is not invertible mod %v", utils.ErrArithmetic, a, p)
	}
	scale, err := p.field.Inverse(num.coeffs[0])
	if err != nil {
		return nil, fmt.Errorf("poly.Poly.ModInverse: %w", err)
	}
	return den.MultWithElement(scale)
}

// ModSquareRoot returns r such that r^2 = this (mod a), by the fixed-point
// iteration r <- this; while r^2 mod a != this, r <- r^2 mod a. Terminates
// because squaring in GF(2^m)[X]/a is a permutation of finite order.
func (p *Poly) ModSquareRoot(a *Poly) (*Poly, error) {
	r := p.Clone()
	for {
		sq, err := r.Multiply(r).Mod(a)
		if err != nil {
			return nil, fmt.Errorf("poly.Poly.ModSquareRoot: %w", err)
		}
		if sq.Equal(p) {
			return r, nil
		}
		r = sq
	}
}

// ModSquareRootMatrix computes sum_j matrix[j]*c[j], then applies SqRoot to
// each coefficient of the result. Used when the squaring matrix is
// precomputed (see Ring.SquareRootMatrix).
func (p *Poly) ModSquareRootMatrix(matrix []*Poly) *Poly {
	field := p.field
	acc := Zero(field)
	for j, c := range p.coeffs {
		if c == 0 || j >= len(matrix) {
			continue
		}
		term, _ := matrix[j].MultWithElement(c)
		acc = acc.Add(term)
	}
	out := make([]uint32, len(acc.coeffs))
	for i, c := range acc.coeffs {
		out[i] = field.SqRoot(c)
	}
	res, _ := New(field, out)
	return res
}

// ModPolynomialToFraction runs the extended Euclidean algorithm on (g, p mod
// g), halting once the remainder's degree drops to at most floor(deg(g)/2),
// and returns (a, b) such that b*p = a (mod g).
func (p *Poly) ModPolynomialToFraction(g *Poly) (a, b *Poly, err error) {
	pMod, err := p.Mod(g)
	if err != nil {
		return nil, nil, fmt.Errorf("poly.Poly.ModPolynomialToFraction: %w", err)
	}
	one, _ := New(p.field, []uint32{1})
	return g.modPolynomialToFractionFull(pMod, one, g.degree/2)
}

// modPolynomialToFractionFull is the shared extended-Euclid core used by
// both ModInverse (target degree 0) and ModPolynomialToFraction (target
// degree floor(deg(g)/2)), receiver g acting as the modulus.
func (g *Poly) modPolynomialToFractionFull(this, bInit *Poly, threshold int) (a, b *Poly, err error) {
	field := g.field

	r0, r1 := g.Clone(), this.Clone()
	b0, b1 := Zero(field), bInit.Clone()

	if r1.degree <= threshold {
		return r1, b1, nil
	}

	for {
		q, r, divErr := r0.Div(r1)
		if divErr != nil {
			return nil, nil, fmt.Errorf("poly.modPolynomialToFractionFull: %w", divErr)
		}
		bNext := q.Multiply(b1)
		bNext = bNext.Add(b0)

		r0, r1 = r1, r
		b0, b1 = b1, bNext

		if r1.degree <= threshold {
			return r1, b1, nil
		}
	}
}

// Equal reports whether p and other have the same field and canonical
// coefficients.
func (p *Poly) Equal(other *Poly) bool {
	if !p.field.Equal(other.field) {
		return false
	}
	if p.degree != other.degree {
		return false
	}
	for i := 0; i <= p.degree; i++ {
		if p.Coeff(i) != other.Coeff(i) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for error messages and debugging.
func (p *Poly) String() string {
	return fmt.Sprintf("poly(deg=%d, coeffs=%v)", p.degree, p.coeffs[:p.degree+1])
}

// bytesPerCoeff returns ceil(m/8).
func (p *Poly) bytesPerCoeff() int {
	return (p.field.M() + 7) / 8
}

// Encoded packs the canonical coefficient sequence (coeffs[0..degree]) into
// bytes, ceil(m/8) bytes per coefficient, little-endian within each
// coefficient.
func (p *Poly) Encoded() []byte {
	bpc := p.bytesPerCoeff()
	n := p.degree + 1
	if n <= 0 {
		n = 1
	}
	out := make([]byte, bpc*n)
	for i := 0; i < n; i++ {
		c := p.Coeff(i)
		for b := 0; b < bpc; b++ {
			out[i*bpc+b] = byte(c >> uint(8*b))
		}
	}
	return out
}

// Decode decodes a byte-packed polynomial over field. Fails with
// ErrEncoding if the length is not a multiple of ceil(m/8), a coefficient
// is out of field range, or the head (highest-degree) coefficient is zero
// while the encoding has more than one coefficient.
func Decode(field *gf2m.Field, data []byte) (*Poly, error) {
	bpc := (field.M() + 7) / 8
	if len(data) == 0 || len(data)%bpc != 0 {
		return nil, fmt.Errorf("poly.Decode: %w: length %d is not a positive multiple of %d bytes/coefficient", utils.ErrEncoding, len(data), bpc)
	}
	n := len(data) / bpc
	coeffs := make([]uint32, n)
	for i := 0; i < n; i++ {
		var c uint32
		for b := 0; b < bpc; b++ {
			c |= uint32(data[i*bpc+b]) << uint(8*b)
		}
		if !field.IsElement(c) {
			return nil, fmt.Errorf("poly.Decode: %w: coefficient %d at index %d is not in GF(2^%d)", utils.ErrEncoding, c, i, field.M())
		}
		coeffs[i] = c
	}
	if n > 1 && coeffs[n-1] == 0 {
		return nil, fmt.Errorf("poly.Decode: %w: head coefficient is zero", utils.ErrEncoding)
	}
	return New(field, coeffs)
}

// IsIrreducible reports whether p is irreducible over GF(2^m): a degree-d
// polynomial is irreducible iff gcd(X^(2^(m*i)) + X, p) has degree 0 for
// every i in [1, floor(d/2)]. X^(2^(m*i)) mod p is computed by repeatedly
// squaring X modulo p: m more squarings per outer step, m*i in total.
func (p *Poly) IsIrreducible() (bool, error) {
	if p.degree <= 0 {
		return false, nil
	}
	field := p.field
	d := p.degree

	xPoly, _ := Monomial(field, 1, 1)
	u := xPoly.Clone()

	for i := 1; i <= d/2; i++ {
		for s := 0; s < field.M(); s++ {
			u = u.Multiply(u)
			var err error
			u, err = u.Mod(p)
			if err != nil {
				return false, fmt.Errorf("poly.Poly.IsIrreducible: %w", err)
			}
		}
		diff := u.Add(xPoly)
		g, err := diff.GCD(p)
		if err != nil {
			return false, fmt.Errorf("poly.Poly.IsIrreducible: %w", err)
		}
		if g.degree != 0 {
			return false, nil
		}
	}
	return true, nil
}
