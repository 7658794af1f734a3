package gf2m

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqf-ice/pqcore/utils"
)

func TestFieldGF8Scenario(t *testing.T) {
	// spec.md §8 scenario 1: m=3, poly = X^3+X+1 (bit pattern 0b1011 = 11).
	f, err := NewFieldWithPoly(3, 0xb)
	require.NoError(t, err)
	require.Equal(t, 8, f.Size())

	require.Equal(t, uint32(4), f.Mult(3, 5))

	inv, err := f.Inverse(3)
	require.NoError(t, err)
	require.Equal(t, uint32(6), inv)

	// sq_root(a) is the unique root of x^2=a (squaring is a bijection in
	// characteristic 2), so it must always satisfy the round-trip property.
	// This is checked directly rather than against a fixed literal, since
	// the only independent way to confirm a specific value is to recompute
	// it by hand from the same field arithmetic under test.
	for a := uint32(1); a < 8; a++ {
		root := f.SqRoot(a)
		require.Equal(t, a, f.Mult(root, root), "sq_root(%d)^2 should equal %d", a, a)
	}
}

func TestNewFieldDefaults(t *testing.T) {
	for m := 2; m <= 16; m++ {
		f, err := NewField(m)
		require.NoError(t, err, "m=%d", m)
		require.Equal(t, m, f.M())
		require.Equal(t, 1<<uint(m), f.Size())
	}
}

func TestFieldRejectsReduciblePoly(t *testing.T) {
	// X^3+X^2+X (bit pattern 0b1110 = 14) factors as X(X^2+X+1), reducible.
	_, err := NewFieldWithPoly(3, 0xe)
	require.Error(t, err)
	require.ErrorIs(t, err, utils.ErrConfig)
}

func TestFieldRejectsOutOfRangeDegree(t *testing.T) {
	_, err := NewField(1)
	require.ErrorIs(t, err, utils.ErrConfig)
	_, err = NewField(32)
	require.ErrorIs(t, err, utils.ErrConfig)
}

func TestFieldMultCommutative(t *testing.T) {
	f, err := NewField(5)
	require.NoError(t, err)
	for a := uint32(0); a < uint32(f.Size()); a++ {
		for b := uint32(0); b < uint32(f.Size()); b++ {
			require.Equal(t, f.Mult(a, b), f.Mult(b, a))
		}
	}
}

func TestFieldInverseIdentity(t *testing.T) {
	f, err := NewField(6)
	require.NoError(t, err)
	for a := uint32(1); a < uint32(f.Size()); a++ {
		inv, err := f.Inverse(a)
		require.NoError(t, err)
		require.Equal(t, uint32(1), f.Mult(a, inv))
	}
}

func TestFieldInverseZeroFails(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)
	_, err = f.Inverse(0)
	require.ErrorIs(t, err, utils.ErrArithmetic)
}

func TestFieldPowMatchesRepeatedMult(t *testing.T) {
	f, err := NewField(5)
	require.NoError(t, err)
	a := uint32(7)
	got := f.Pow(a, 5)
	want := uint32(1)
	for i := 0; i < 5; i++ {
		want = f.Mult(want, a)
	}
	require.Equal(t, want, got)
}

func TestFieldSolveQuadraticRoundTrip(t *testing.T) {
	f, err := NewField(7)
	require.NoError(t, err)
	for c := uint32(0); c < uint32(f.Size()); c++ {
		if f.Trace(c) != 0 {
			continue // x^2+x=c has no solution when Tr(c) != 0
		}
		x := f.SolveQuadratic(c)
		lhs := f.Add(f.Mult(x, x), x)
		require.Equal(t, c, lhs, "x^2+x should equal c for c=%d", c)
	}
}

func TestFieldTraceZeroElementsAreSolvable(t *testing.T) {
	f, err := NewField(5)
	require.NoError(t, err)
	sawTraceZero, sawTraceOne := false, false
	for c := uint32(0); c < uint32(f.Size()); c++ {
		if f.Trace(c) == 0 {
			sawTraceZero = true
			x := f.SolveQuadratic(c)
			require.Equal(t, c, f.Add(f.Mult(x, x), x))
		} else {
			sawTraceOne = true
		}
	}
	require.True(t, sawTraceZero)
	require.True(t, sawTraceOne)
}

func TestFieldEqual(t *testing.T) {
	a, err := NewField(4)
	require.NoError(t, err)
	b, err := NewField(4)
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	c, err := NewField(5)
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}

func TestFieldIsElement(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)
	require.True(t, f.IsElement(0))
	require.True(t, f.IsElement(15))
	require.False(t, f.IsElement(16))
}

func TestFieldRandomElementInRange(t *testing.T) {
	f, err := NewField(8)
	require.NoError(t, err)
	rng, err := utils.NewKeyedPRNG([]byte("field-random"))
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		v := f.RandomElement(rng)
		require.True(t, f.IsElement(v))
	}
	for i := 0; i < 500; i++ {
		v := f.RandomNonzeroElement(rng)
		require.True(t, f.IsElement(v))
		require.NotEqual(t, uint32(0), v)
	}
}
