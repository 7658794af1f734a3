package poly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqf-ice/pqcore/gf2m"
	"github.com/sqf-ice/pqcore/utils"
)

func mustField(t *testing.T, m int) *gf2m.Field {
	t.Helper()
	f, err := gf2m.NewField(m)
	require.NoError(t, err)
	return f
}

func TestEvaluateAtHorner(t *testing.T) {
	f := mustField(t, 4)
	p, err := New(f, []uint32{1, 2, 3}) // 1 + 2X + 3X^2
	require.NoError(t, err)

	e := uint32(5)
	want := f.Add(f.Add(uint32(1), f.Mult(2, e)), f.Mult(3, f.Mult(e, e)))
	require.Equal(t, want, p.EvaluateAt(e))
}

func TestAddCommutativeAndSelfCancel(t *testing.T) {
	f := mustField(t, 4)
	a, err := New(f, []uint32{1, 2, 3})
	require.NoError(t, err)
	b, err := New(f, []uint32{4, 0, 5, 6})
	require.NoError(t, err)

	require.True(t, a.Add(b).Equal(b.Add(a)))
	require.True(t, a.Add(a).IsZero())
}

func TestMultWithElement(t *testing.T) {
	f := mustField(t, 4)
	p, err := New(f, []uint32{1, 2, 3})
	require.NoError(t, err)

	zero, err := p.MultWithElement(0)
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	one, err := p.MultWithElement(1)
	require.NoError(t, err)
	require.True(t, one.Equal(p))

	_, err = p.MultWithElement(16) // out of GF(2^4)
	require.ErrorIs(t, err, utils.ErrArithmetic)
}

func TestMultWithMonomial(t *testing.T) {
	f := mustField(t, 3)
	p, err := New(f, []uint32{1, 2})
	require.NoError(t, err)
	shifted := p.MultWithMonomial(2)
	require.Equal(t, uint32(0), shifted.Coeff(0))
	require.Equal(t, uint32(0), shifted.Coeff(1))
	require.Equal(t, uint32(1), shifted.Coeff(2))
	require.Equal(t, uint32(2), shifted.Coeff(3))
}

func TestMultiplyMatchesSchoolbook(t *testing.T) {
	f := mustField(t, 5)
	a, err := New(f, []uint32{3, 7, 1, 9, 2})
	require.NoError(t, err)
	b, err := New(f, []uint32{5, 0, 4, 6})
	require.NoError(t, err)

	got := a.Multiply(b)
	want := schoolbookMultiply(f, a, b)
	require.True(t, got.Equal(want), "got %v want %v", got, want)
}

func schoolbookMultiply(f *gf2m.Field, a, b *Poly) *Poly {
	out := make([]uint32, a.Degree()+b.Degree()+2)
	for i := 0; i <= a.Degree(); i++ {
		for j := 0; j <= b.Degree(); j++ {
			out[i+j] = f.Add(out[i+j], f.Mult(a.Coeff(i), b.Coeff(j)))
		}
	}
	p, _ := New(f, out)
	return p
}

func TestDivRoundTrip(t *testing.T) {
	f := mustField(t, 5)
	a, err := New(f, []uint32{3, 7, 1, 9, 2, 11})
	require.NoError(t, err)
	div, err := New(f, []uint32{5, 1, 4})
	require.NoError(t, err)

	q, r, err := a.Div(div)
	require.NoError(t, err)
	require.True(t, r.Degree() < div.Degree())

	reconstructed := q.Multiply(div).Add(r)
	require.True(t, reconstructed.Equal(a))
}

func TestDivByZeroFails(t *testing.T) {
	f := mustField(t, 4)
	a, err := New(f, []uint32{1, 2})
	require.NoError(t, err)
	_, _, err = a.Div(Zero(f))
	require.ErrorIs(t, err, utils.ErrArithmetic)
}

func TestGCD(t *testing.T) {
	f := mustField(t, 4)
	// (X+2)(X+3)
	a, err := New(f, []uint32{f.Mult(2, 3), f.Add(2, 3), 1})
	require.NoError(t, err)
	// (X+2)(X+5)
	b, err := New(f, []uint32{f.Mult(2, 5), f.Add(2, 5), 1})
	require.NoError(t, err)

	g, err := a.GCD(b)
	require.NoError(t, err)
	require.Equal(t, 1, g.Degree())
}

func TestModInverseRoundTrip(t *testing.T) {
	f := mustField(t, 4)
	// m must be irreducible over F to guarantee invertibility of any nonzero
	// residue; use an irreducible quadratic over GF(16) of the form
	// X^2 + X + a, with a found by direct search.
	var mPoly *Poly
	for a := uint32(1); a < uint32(f.Size()); a++ {
		cand, err := New(f, []uint32{a, 1, 1})
		require.NoError(t, err)
		irr, err := cand.IsIrreducible()
		require.NoError(t, err)
		if irr {
			mPoly = cand
			break
		}
	}
	require.NotNil(t, mPoly, "expected to find an irreducible quadratic")

	x, err := New(f, []uint32{3, 1})
	require.NoError(t, err)
	inv, err := mPoly.ModInverse(x)
	require.NoError(t, err)

	prod, err := mPoly.ModMultiply(x, inv)
	require.NoError(t, err)
	require.Equal(t, 0, prod.Degree())
	require.Equal(t, uint32(1), prod.Coeff(0))
}

func TestModSquareRoot(t *testing.T) {
	f := mustField(t, 4)
	var mPoly *Poly
	for a := uint32(1); a < uint32(f.Size()); a++ {
		cand, err := New(f, []uint32{a, 1, 1})
		require.NoError(t, err)
		irr, err := cand.IsIrreducible()
		require.NoError(t, err)
		if irr {
			mPoly = cand
			break
		}
	}
	require.NotNil(t, mPoly)

	x, err := New(f, []uint32{5, 2})
	require.NoError(t, err)
	xMod, err := x.Mod(mPoly)
	require.NoError(t, err)

	root, err := xMod.ModSquareRoot(mPoly)
	require.NoError(t, err)

	sq, err := root.Multiply(root).Mod(mPoly)
	require.NoError(t, err)
	require.True(t, sq.Equal(xMod))
}

func TestModPolynomialToFraction(t *testing.T) {
	f := mustField(t, 4)
	var g *Poly
	for a := uint32(1); a < uint32(f.Size()); a++ {
		cand, err := New(f, []uint32{a, 1, 0, 0, 1})
		require.NoError(t, err)
		irr, err := cand.IsIrreducible()
		require.NoError(t, err)
		if irr {
			g = cand
			break
		}
	}
	require.NotNil(t, g)

	this, err := New(f, []uint32{7, 2, 9})
	require.NoError(t, err)

	a, b, err := this.ModPolynomialToFraction(g)
	require.NoError(t, err)
	require.True(t, a.Degree() <= g.Degree()/2)

	// b*this = a (mod g)
	lhs, err := b.Multiply(this).Mod(g)
	require.NoError(t, err)
	require.True(t, lhs.Equal(a))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := mustField(t, 9) // 2 bytes/coefficient
	p, err := New(f, []uint32{5, 300, 1, 511})
	require.NoError(t, err)

	enc := p.Encoded()
	back, err := Decode(f, enc)
	require.NoError(t, err)
	require.True(t, p.Equal(back))
}

func TestDecodeBadLength(t *testing.T) {
	f := mustField(t, 9)
	_, err := Decode(f, []byte{1})
	require.ErrorIs(t, err, utils.ErrEncoding)
}

func TestDecodeZeroHeadCoefficientFails(t *testing.T) {
	f := mustField(t, 4) // 1 byte/coefficient
	_, err := Decode(f, []byte{1, 0})
	require.ErrorIs(t, err, utils.ErrEncoding)
}

func TestIsIrreducible(t *testing.T) {
	f := mustField(t, 4)
	// X^2+X+a is reducible iff a has trace 0; scan for both outcomes.
	foundIrr, foundRed := false, false
	for a := uint32(1); a < uint32(f.Size()) && !(foundIrr && foundRed); a++ {
		cand, err := New(f, []uint32{a, 1, 1})
		require.NoError(t, err)
		irr, err := cand.IsIrreducible()
		require.NoError(t, err)
		if irr {
			foundIrr = true
		} else {
			foundRed = true
		}
	}
	require.True(t, foundIrr)
	require.True(t, foundRed)
}

func TestIsIrreducibleLinearAlwaysTrue(t *testing.T) {
	f := mustField(t, 4)
	p, err := New(f, []uint32{3, 1})
	require.NoError(t, err)
	irr, err := p.IsIrreducible()
	require.NoError(t, err)
	require.True(t, irr)
}
