package poly

import (
	"fmt"

	"github.com/sqf-ice/pqcore/gf2m"
	"github.com/sqf-ice/pqcore/utils"
)

// Ring holds the squaring and square-root matrices over GF(2^m)[X]/g for a
// monic Goppa polynomial g of degree t (PolynomialRingGF2m, C8). Both
// matrices are t-element arrays of polynomials of degree < t. For every
// r in F[X]/g, applying the squaring matrix then the square-root matrix
// yields r, and vice versa.
type Ring struct {
	field *gf2m.Field
	g     *Poly
	t     int

	squaring   []*Poly // column j holds (X^j)^2 mod g
	squareRoot []*Poly // inverse of the squaring matrix's action
}

// NewRing builds the squaring and square-root matrices for field F and
// monic Goppa polynomial g of degree t.
func NewRing(field *gf2m.Field, g *Poly) (*Ring, error) {
	t := g.Degree()
	if t <= 0 {
		return nil, fmt.Errorf("poly.NewRing: %w: g must have positive degree", utils.ErrConfig)
	}

	squaring := make([]*Poly, t)
	for j := 0; j < t; j++ {
		xj, err := Monomial(field, j, 1)
		if err != nil {
			return nil, fmt.Errorf("poly.NewRing: %w", err)
		}
		sq := xj.Multiply(xj)
		sqMod, err := sq.Mod(g)
		if err != nil {
			return nil, fmt.Errorf("poly.NewRing: %w", err)
		}
		squaring[j] = sqMod
	}

	squareRoot, err := invertMatrix(field, squaring, t)
	if err != nil {
		return nil, fmt.Errorf("poly.NewRing: %w", err)
	}

	return &Ring{field: field, g: g, t: t, squaring: squaring, squareRoot: squareRoot}, nil
}

// SquaringMatrix returns the t-element squaring matrix: column j holds
// (X^j)^2 mod g.
func (r *Ring) SquaringMatrix() []*Poly { return r.squaring }

// SquareRootMatrix returns the t-element square-root matrix, the inverse of
// the squaring matrix's linear action on F[X]/g, consumed by
// Poly.ModSquareRootMatrix during decoding.
func (r *Ring) SquareRootMatrix() []*Poly { return r.squareRoot }

// invertMatrix computes the square-root matrix by LU-style Gauss-Jordan
// elimination on the squaring matrix, treating each column's coefficient
// vector (length t) as a column of a t x t matrix over F and solving for
// its inverse. The squaring matrix is linear since squaring is additive in
// characteristic 2 ((a+b)^2 = a^2+b^2), so its action on F[X]/g (viewed as
// an F-vector space of dimension t) is exactly this matrix.
func invertMatrix(field *gf2m.Field, squaring []*Poly, t int) ([]*Poly, error) {
	// a[i][j] = coefficient of X^i in squaring[j], augmented with the t x t
	// identity in columns [t, 2t).
	aug := make([][]uint32, t)
	for i := 0; i < t; i++ {
		aug[i] = make([]uint32, 2*t)
		for j := 0; j < t; j++ {
			aug[i][j] = squaring[j].Coeff(i)
		}
		aug[i][t+i] = 1
	}

	for col := 0; col < t; col++ {
		pivotRow := -1
		for row := col; row < t; row++ {
			if aug[row][col] != 0 {
				pivotRow = row
				break
			}
		}
		if pivotRow < 0 {
			return nil, fmt.Errorf("%w: squaring matrix is singular at column %d", utils.ErrArithmetic, col)
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		inv, err := field.Inverse(aug[col][col])
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		for k := 0; k < 2*t; k++ {
			aug[col][k] = field.Mult(aug[col][k], inv)
		}

		for row := 0; row < t; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for k := 0; k < 2*t; k++ {
				aug[row][k] = field.Add(aug[row][k], field.Mult(factor, aug[col][k]))
			}
		}
	}

	inverse := make([]*Poly, t)
	for j := 0; j < t; j++ {
		coeffs := make([]uint32, t)
		for i := 0; i < t; i++ {
			coeffs[i] = aug[i][t+j]
		}
		p, err := New(field, coeffs)
		if err != nil {
			return nil, err
		}
		inverse[j] = p
	}
	return inverse, nil
}
