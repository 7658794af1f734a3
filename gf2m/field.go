// Package gf2m implements arithmetic in the finite field GF(2^m) for
// 2 <= m <= 31, represented via precomputed exponent/log tables over a
// fixed irreducible polynomial, together with length-bounded vectors of
// field elements (GF2mVector).
package gf2m

import (
	"fmt"

	"github.com/sqf-ice/pqcore/utils"
)

// defaultIrreduciblePoly holds, for each supported degree m, the bit
// pattern of a default irreducible polynomial of that degree (bit k is the
// coefficient of X^k, including the leading degree-m term). These are the
// same canonical low-weight trinomials/pentanomials used across binary-field
// implementations (e.g. the tables in the Handbook of Applied Cryptography),
// chosen for minimal Hamming weight.
var defaultIrreduciblePoly = map[int]uint32{
	2: 0x7, 3: 0xb, 4: 0x13, 5: 0x25, 6: 0x43, 7: 0x83, 8: 0x11d,
	9: 0x211, 10: 0x409, 11: 0x805, 12: 0x1053, 13: 0x201b, 14: 0x4443,
	15: 0x8003, 16: 0x1100b, 17: 0x20009, 18: 0x40081, 19: 0x80027,
	20: 0x100009, 21: 0x200005, 22: 0x400003, 23: 0x800021, 24: 0x100001b,
	25: 0x2000009, 26: 0x4000047, 27: 0x8000027, 28: 0x10000009,
	29: 0x20000005, 30: 0x40000053, 31: 0x80000009,
}

// Field is the finite field GF(2^m), immutable after construction. Two
// Fields are equal iff (m, poly) match.
type Field struct {
	m    int
	poly uint32 // irreducible polynomial, bit k = coefficient of X^k (degree-m bit included)

	exp []uint32 // exp[i] = generator^i, length 2^m
	log []uint32 // log[exp[i]] = i, length 2^m (log[0] is unused)
}

// NewField constructs GF(2^m) using the default irreducible polynomial for
// the given degree. m must be in [2,31].
func NewField(m int) (*Field, error) {
	poly, ok := defaultIrreduciblePoly[m]
	if !ok {
		return nil, fmt.Errorf("gf2m.NewField: %w: no default irreducible polynomial for m=%d", utils.ErrConfig, m)
	}
	return NewFieldWithPoly(m, poly)
}

// NewFieldWithPoly constructs GF(2^m) using a caller-supplied irreducible
// polynomial, encoded the same way as the field's own poly attribute (bit k
// is the coefficient of X^k, including the degree-m leading bit, which must
// be set). Fails with ErrConfig unless poly has degree exactly m, passes
// isIrreducible, and has X generating all 2^m-1 nonzero elements.
func NewFieldWithPoly(m int, poly uint32) (*Field, error) {
	if m < 2 || m > 31 {
		return nil, fmt.Errorf("gf2m.NewFieldWithPoly: %w: degree m=%d out of range [2,31]", utils.ErrConfig, m)
	}
	if poly>>uint(m) != 1 {
		return nil, fmt.Errorf("gf2m.NewFieldWithPoly: %w: poly does not have degree exactly m", utils.ErrConfig)
	}
	if !isIrreducible(m, poly) {
		return nil, fmt.Errorf("gf2m.NewFieldWithPoly: %w: poly 0x%x is not irreducible over GF(2) of degree %d", utils.ErrConfig, poly, m)
	}

	size := 1 << uint(m)
	f := &Field{
		m:    m,
		poly: poly,
		exp:  make([]uint32, size),
		log:  make([]uint32, size),
	}

	// Build exp/log by iterating multiplication-by-X from the generator
	// alpha = X. poly carries its own degree-m leading bit, so whenever the
	// shift pushes a coefficient into that bit position, XORing poly back
	// in both cancels it and folds in poly's lower-degree terms. The power
	// of X must first return to 1 after exactly 2^m-1 steps; otherwise X is
	// not a generator and poly is rejected.
	topBit := uint32(1) << uint(m)
	reg := uint32(1)
	for i := 0; i < size-1; i++ {
		f.exp[i] = reg
		f.log[reg] = uint32(i)

		reg <<= 1
		if reg&topBit != 0 {
			reg ^= poly
		}
		if (reg == 1) != (i == size-2) {
			return nil, fmt.Errorf("gf2m.NewFieldWithPoly: %w: X does not generate the nonzero elements modulo poly 0x%x", utils.ErrConfig, poly)
		}
	}
	f.exp[size-1] = 1

	return f, nil
}

// isIrreducible applies the one-root (Fermat) test to a degree-m polynomial
// over GF(2): it reports whether X^(2^m) = X (mod poly), i.e. whether poly
// divides X^(2^m)-X. Every irreducible poly of degree m passes. A reducible
// poly also passes when its irreducible factors are distinct and all have
// degrees dividing m (for example X^4+X = X(X+1)(X^2+X+1) for m=4); the
// gcd(X^(2^(m/p)) - X, poly) == 1 checks over the prime divisors p of m that
// would reject those are not performed here. NewFieldWithPoly rejects such
// polys afterwards, because X then does not generate 2^m-1 distinct powers.
func isIrreducible(m int, poly uint32) bool {
	mask := uint32(1<<uint(m)) - 1

	// X^(2^m) mod poly, by squaring X modulo poly m times.
	reg := uint32(2) // X
	for i := 0; i < m; i++ {
		reg = gf2SquareMod(reg, poly, mask, m)
	}

	return reg == 2
}

// gf2SquareMod squares the bit-pattern of a GF(2)[X] element (degree < m)
// and reduces modulo poly (degree m).
func gf2SquareMod(a, poly, mask uint32, m int) uint32 {
	// Square: GF(2) squaring spreads bit i to bit 2i (Frobenius), since
	// cross terms 2*a_i*a_j vanish in characteristic 2.
	var sq uint64
	for i := 0; i < m; i++ {
		if a&(1<<uint(i)) != 0 {
			sq |= 1 << uint(2*i)
		}
	}

	// Reduce sq (degree < 2m) modulo poly (degree m), bit by bit from the
	// top down. poly carries its own degree-m leading bit, so XORing the
	// shifted poly both clears the bit at deg and folds in poly's
	// lower-degree terms.
	for deg := 2*m - 2; deg >= m; deg-- {
		if sq&(1<<uint(deg)) != 0 {
			sq ^= uint64(poly) << uint(deg-m)
		}
	}

	return uint32(sq) & mask
}

// M returns the field's degree.
func (f *Field) M() int { return f.m }

// Poly returns the field's irreducible polynomial bit pattern.
func (f *Field) Poly() uint32 { return f.poly }

// Size returns 2^m, the number of elements of the field.
func (f *Field) Size() int { return 1 << uint(f.m) }

// IsElement reports whether x is a valid element of the field, 0 <= x < 2^m.
func (f *Field) IsElement(x uint32) bool {
	return x < uint32(f.Size())
}

// Equal reports whether f and other represent the same field (m, poly).
func (f *Field) Equal(other *Field) bool {
	return f.m == other.m && f.poly == other.poly
}

// Add returns a XOR b, the characteristic-2 addition (same as subtraction).
func (f *Field) Add(a, b uint32) uint32 {
	return a ^ b
}

// Mult returns a*b in the field. Returns 0 if either operand is 0.
func (f *Field) Mult(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	sum := (f.log[a] + f.log[b]) % uint32(f.Size()-1)
	return f.exp[sum]
}

// Inverse returns a^-1 in the field. Fails with ErrArithmetic if a == 0.
func (f *Field) Inverse(a uint32) (uint32, error) {
	if a == 0 {
		return 0, fmt.Errorf("gf2m.Field.Inverse: %w: no inverse of 0", utils.ErrArithmetic)
	}
	n := uint32(f.Size() - 1)
	idx := (n - f.log[a]%n) % n
	return f.exp[idx], nil
}

// Pow returns a^k in the field, by repeated squaring on the discrete log.
func (f *Field) Pow(a uint32, k int) uint32 {
	if a == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	if k == 0 {
		return 1
	}
	n := int(f.Size() - 1)
	e := (int(f.log[a]) * k) % n
	if e < 0 {
		e += n
	}
	return f.exp[e]
}

// SqRoot returns the unique square root of a, computed as a^(2^(m-1)),
// which is the field's square-root exponent since squaring is a bijection
// of GF(2^m) (the Frobenius automorphism x -> x^2).
func (f *Field) SqRoot(a uint32) uint32 {
	return f.Pow(a, 1<<uint(f.m-1))
}

// Trace returns Tr(c) = c + c^2 + c^4 + ... + c^(2^(m-1)), the sum of every
// Frobenius conjugate of c. x^2+x=c has a solution in GF(2^m) iff Tr(c)=0.
func (f *Field) Trace(c uint32) uint32 {
	var tr uint32
	x := c
	for i := 0; i < f.m; i++ {
		tr ^= x
		x = f.sqr(x)
	}
	return tr
}

// SolveQuadratic solves x^2 + x = c for x in GF(2^m), returning one of the
// two roots (the other is x+1, since (x+1)^2+(x+1) = x^2+x in characteristic
// 2). c=0 always has root x=0. For c != 0 this requires Tr(c)=0; callers
// with c of unknown trace should check Trace(c)==0 first, since the
// computation below returns a value satisfying the equation only in that
// case.
func (f *Field) SolveQuadratic(c uint32) uint32 {
	if c == 0 {
		return 0
	}
	// Even m: with delta of trace 1,
	// x = sum_{0<=i<m-1} c^(2^i) * sum_{i<j<m} delta^(2^j).
	if f.m%2 == 0 {
		delta := uint32(1)
		for f.Trace(delta) == 0 {
			delta++
		}
		var z uint32
		for i := 0; i < f.m-1; i++ {
			var s uint32
			for j := i + 1; j < f.m; j++ {
				s ^= f.Pow(delta, 1<<uint(j))
			}
			z ^= f.Mult(f.Pow(c, 1<<uint(i)), s)
		}
		return z
	}
	// Odd m, half-trace solver: H(c) = c (+) sum_{i even, 2<=i<m} c^(2^i)
	// satisfies H(c)^2 + H(c) = c whenever Tr(c)=0.
	var z uint32
	x := c
	for i := 1; i < f.m; i++ {
		x = f.sqr(x)
		if i%2 == 0 {
			z ^= x
		}
	}
	z ^= c
	return z
}

func (f *Field) sqr(a uint32) uint32 {
	return f.Mult(a, a)
}

// RandomElement returns a uniformly random element of the field.
func (f *Field) RandomElement(rng utils.PRNG) uint32 {
	return uint32(rng.IntN(f.Size()))
}

// RandomNonzeroElement returns a uniformly random nonzero element.
func (f *Field) RandomNonzeroElement(rng utils.PRNG) uint32 {
	for {
		v := f.RandomElement(rng)
		if v != 0 {
			return v
		}
	}
}
