// Package goppa implements binary Goppa code construction (canonical
// parity-check matrix, systematic-form reduction) and Patterson syndrome
// decoding (C9), built on the gf2m, poly, and gf2mat packages.
package goppa

import (
	"errors"
	"fmt"

	"github.com/sqf-ice/pqcore/gf2m"
	"github.com/sqf-ice/pqcore/gf2mat"
	"github.com/sqf-ice/pqcore/poly"
	"github.com/sqf-ice/pqcore/utils"
)

// Code is a binary Goppa code over GF(2^m): support L = every element of
// the field (n = 2^m code length), Goppa polynomial g of degree t.
type Code struct {
	field *gf2m.Field
	g     *poly.Poly
	n     int
	t     int
	ring  *poly.Ring
}

// NewCode constructs the Goppa code for field and monic polynomial g of
// degree t, precomputing the squaring/square-root matrices used during
// decoding.
func NewCode(field *gf2m.Field, g *poly.Poly) (*Code, error) {
	t := g.Degree()
	if t <= 0 {
		return nil, fmt.Errorf("goppa.NewCode: %w: Goppa polynomial must have positive degree", utils.ErrConfig)
	}
	ring, err := poly.NewRing(field, g)
	if err != nil {
		return nil, fmt.Errorf("goppa.NewCode: %w", err)
	}
	return &Code{field: field, g: g, n: field.Size(), t: t, ring: ring}, nil
}

// Field returns the code's underlying field.
func (c *Code) Field() *gf2m.Field { return c.field }

// G returns the Goppa polynomial.
func (c *Code) G() *poly.Poly { return c.g }

// N returns the code length n = 2^m.
func (c *Code) N() int { return c.n }

// T returns the Goppa polynomial's degree (the code's error-correction
// capability).
func (c *Code) T() int { return c.t }

// CreateCanonicalCheckMatrix builds the canonical t*m x n parity-check
// matrix H:
//
//  1. YZ[0][j] = g(j)^-1 for every field element j (fails with
//     ArithmeticError if g has a root in the field, since the classical
//     binary Goppa construction requires L to avoid every root of g);
//     YZ[i][j] = j*YZ[i-1][j] for i >= 1.
//  2. H[i][j] = sum_{k=0..i} YZ[k][j] * g_(t+k-i), the Hankel-style
//     triangular combination of g's coefficients.
//  3. Each GF(2^m) entry H[i][j] is expanded into m rows over GF(2): bit u
//     of H[i][j] (u=0..m-1, LSB first) is written to row (i+1)*m-u-1, so
//     the LSB lands in the bottom row of the i-th m-row block.
func (c *Code) CreateCanonicalCheckMatrix() (*gf2mat.Matrix, error) {
	field := c.field
	n, t, m := c.n, c.t, field.M()

	yz := make([][]uint32, t)
	for i := range yz {
		yz[i] = make([]uint32, n)
	}
	for j := 0; j < n; j++ {
		gj := c.g.EvaluateAt(uint32(j))
		inv, err := field.Inverse(gj)
		if err != nil {
			return nil, fmt.Errorf("goppa.Code.CreateCanonicalCheckMatrix: %w: Goppa polynomial vanishes at %d", utils.ErrArithmetic, j)
		}
		yz[0][j] = inv
	}
	for i := 1; i < t; i++ {
		for j := 0; j < n; j++ {
			yz[i][j] = field.Mult(uint32(j), yz[i-1][j])
		}
	}

	h := make([][]uint32, t)
	for i := range h {
		h[i] = make([]uint32, n)
		for j := 0; j < n; j++ {
			var sum uint32
			for k := 0; k <= i; k++ {
				sum = field.Add(sum, field.Mult(yz[k][j], c.g.Coeff(t+k-i)))
			}
			h[i][j] = sum
		}
	}

	out := gf2mat.NewMatrix(t*m, n)
	for i := 0; i < t; i++ {
		for j := 0; j < n; j++ {
			elem := h[i][j]
			for u := 0; u < m; u++ {
				if (elem>>uint(u))&1 != 0 {
					row := (i+1)*m - u - 1
					out.SetBit(row, j)
				}
			}
		}
	}
	return out, nil
}

// MaMaPe holds the systematic-form decomposition (S^-1, M, P) of a
// parity-check matrix.
type MaMaPe struct {
	SInv *gf2mat.Matrix
	M    *gf2mat.Matrix
	P    *gf2mat.Permutation
}

// ComputeSystematicForm repeatedly samples a random column permutation P,
// forms H' = H*P, and takes S^-1 as H''s left (t*m x t*m) submatrix, until
// S^-1 is invertible. Once found, M is the right submatrix of S*H' where
// S = (S^-1)^-1. The loop is unbounded: with a random full-rank P the
// probability of a singular left submatrix is bounded away from 1, so
// expected length is geometric.
func ComputeSystematicForm(h *gf2mat.Matrix, rng utils.PRNG) (*MaMaPe, error) {
	n := h.Cols()
	for {
		p := gf2mat.NewRandomPermutation(n, rng)
		hPrime, err := h.RightMultiply(p)
		if err != nil {
			return nil, fmt.Errorf("goppa.ComputeSystematicForm: %w", err)
		}
		sInv := hPrime.LeftSubMatrix()
		s, err := sInv.ComputeInverse()
		if err != nil {
			if errors.Is(err, utils.ErrSingular) {
				continue // singular submatrix: resample P
			}
			return nil, fmt.Errorf("goppa.ComputeSystematicForm: %w", err)
		}
		sh, err := s.Multiply(hPrime)
		if err != nil {
			return nil, fmt.Errorf("goppa.ComputeSystematicForm: %w", err)
		}
		m := sh.RightSubMatrix()
		return &MaMaPe{SInv: sInv, M: m, P: p}, nil
	}
}

// ComputeSystematicFormWithStats behaves like ComputeSystematicForm but
// additionally records the number of permutations sampled into stats.
func ComputeSystematicFormWithStats(h *gf2mat.Matrix, rng utils.PRNG, stats *RetryStats) (*MaMaPe, error) {
	n := h.Cols()
	attempts := 0
	for {
		attempts++
		p := gf2mat.NewRandomPermutation(n, rng)
		hPrime, err := h.RightMultiply(p)
		if err != nil {
			return nil, fmt.Errorf("goppa.ComputeSystematicFormWithStats: %w", err)
		}
		sInv := hPrime.LeftSubMatrix()
		s, err := sInv.ComputeInverse()
		if err != nil {
			if errors.Is(err, utils.ErrSingular) {
				continue
			}
			return nil, fmt.Errorf("goppa.ComputeSystematicFormWithStats: %w", err)
		}
		sh, err := s.Multiply(hPrime)
		if err != nil {
			return nil, fmt.Errorf("goppa.ComputeSystematicFormWithStats: %w", err)
		}
		m := sh.RightSubMatrix()
		stats.Record(attempts)
		return &MaMaPe{SInv: sInv, M: m, P: p}, nil
	}
}

// MatrixSet holds a generator matrix G together with the column index set J
// on which G's submatrix is the identity.
type MatrixSet struct {
	G *gf2mat.Matrix
	J []int
}

// BuildGeneratorMatrix derives a generator matrix from the systematic-form
// decomposition of a parity-check matrix H (shape t*m x n, with t*m = H.Rows()):
// the systematic relation S*H*P = (I | M) gives parity check (I | M) for
// H' = H*P, so G' = (M^T | I_k) satisfies (I|M)*G'^T = 0. Undoing the
// permutation, G = G' * P^-1 is a generator matrix for the original H, with
// J recording which of G's columns carry the identity block.
func BuildGeneratorMatrix(mamape *MaMaPe) *MatrixSet {
	tm := mamape.SInv.Rows()
	k := mamape.M.Cols()
	n := tm + k

	gPrime := gf2mat.NewMatrix(k, n)
	for i := 0; i < k; i++ {
		for j := 0; j < tm; j++ {
			if mamape.M.Bit(j, i) != 0 {
				gPrime.SetBit(i, j)
			}
		}
		gPrime.SetBit(i, tm+i)
	}

	pInv := mamape.P.Inverse()
	g, err := gPrime.RightMultiply(pInv)
	if err != nil {
		// pInv always has length n = gPrime.Cols() by construction.
		panic(fmt.Sprintf("goppa.BuildGeneratorMatrix: unexpected: %v", err))
	}

	j := make([]int, 0, k)
	for col := 0; col < n; col++ {
		if pInv.At(col) >= tm {
			j = append(j, col)
		}
	}

	return &MatrixSet{G: g, J: j}
}
