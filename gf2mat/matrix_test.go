package gf2mat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqf-ice/pqcore/utils"
)

func TestMatrixBitOps(t *testing.T) {
	m := NewMatrix(3, 5)
	m.SetBit(1, 4)
	require.Equal(t, 1, m.Bit(1, 4))
	m.FlipBit(1, 4)
	require.Equal(t, 0, m.Bit(1, 4))
	m.FlipBit(1, 4)
	require.Equal(t, 1, m.Bit(1, 4))
	m.ClearBit(1, 4)
	require.Equal(t, 0, m.Bit(1, 4))
}

func TestIdentityMatrix(t *testing.T) {
	id := Identity(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0
			if i == j {
				want = 1
			}
			require.Equal(t, want, id.Bit(i, j))
		}
	}
}

func TestMatrixRowWeight(t *testing.T) {
	m := NewMatrix(2, 40)
	m.SetBit(0, 0)
	m.SetBit(0, 33)
	m.SetBit(0, 39)
	require.Equal(t, 3, m.RowWeight(0))
	require.Equal(t, 0, m.RowWeight(1))
}

func TestMatrixRightMultiplyPermutesColumns(t *testing.T) {
	m := NewMatrix(2, 3)
	m.SetBit(0, 0)
	m.SetBit(1, 1)
	m.SetBit(1, 2)

	perm, err := NewPermutationFromArray([]int{2, 0, 1})
	require.NoError(t, err)

	out, err := m.RightMultiply(perm)
	require.NoError(t, err)
	// column j of out = column perm.At(j) of m
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			require.Equal(t, m.Bit(i, perm.At(j)), out.Bit(i, j))
		}
	}
}

func TestMatrixSubMatrices(t *testing.T) {
	m := NewMatrix(2, 5) // rows=2, so LeftSubMatrix = columns[0,2), RightSubMatrix = columns[2,5)
	m.SetBit(0, 0)
	m.SetBit(0, 3)
	m.SetBit(1, 1)
	m.SetBit(1, 4)

	left := m.LeftSubMatrix()
	require.Equal(t, 2, left.Cols())
	require.Equal(t, 1, left.Bit(0, 0))
	require.Equal(t, 1, left.Bit(1, 1))

	right := m.RightSubMatrix()
	require.Equal(t, 3, right.Cols())
	require.Equal(t, 1, right.Bit(0, 1)) // col 3 -> index 1
	require.Equal(t, 1, right.Bit(1, 2)) // col 4 -> index 2
}

func TestMatrixLeftMultiply(t *testing.T) {
	m := NewMatrix(3, 4)
	m.SetBit(0, 0)
	m.SetBit(0, 1)
	m.SetBit(1, 1)
	m.SetBit(2, 2)

	v := NewVector(3)
	v.SetBit(0)
	v.SetBit(1)

	out := m.LeftMultiply(v)
	// row0 XOR row1 = bits {0,1} XOR {1} = {0}
	require.Equal(t, 1, out.Bit(0))
	require.Equal(t, 0, out.Bit(1))
	require.Equal(t, 0, out.Bit(2))
}

func TestMatrixComputeInverseRoundTrip(t *testing.T) {
	m := NewMatrix(4, 4)
	m.SetBit(0, 0)
	m.SetBit(0, 1)
	m.SetBit(1, 1)
	m.SetBit(1, 2)
	m.SetBit(2, 2)
	m.SetBit(2, 3)
	m.SetBit(3, 3)

	inv, err := m.ComputeInverse()
	require.NoError(t, err)

	prod := matMul(m, inv)
	require.True(t, prod.Equal(Identity(4)))
}

func matMul(a, b *Matrix) *Matrix {
	n := a.Rows()
	out := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		v := NewVector(n)
		for k := 0; k < n; k++ {
			if a.Bit(i, k) != 0 {
				v.SetBit(k)
			}
		}
		row := b.LeftMultiply(v)
		out.SetRow(i, row)
	}
	return out
}

func TestMatrixComputeInverseSingularFails(t *testing.T) {
	m := NewMatrix(3, 3) // all-zero rows, singular
	_, err := m.ComputeInverse()
	require.ErrorIs(t, err, utils.ErrArithmetic)
	require.ErrorIs(t, err, utils.ErrSingular)
}

func TestMatrixComputeInverseNonSquareFails(t *testing.T) {
	m := NewMatrix(2, 3)
	_, err := m.ComputeInverse()
	require.ErrorIs(t, err, utils.ErrArithmetic)
}

func TestMatrixEncodeDecodeRoundTrip(t *testing.T) {
	m := NewMatrix(3, 40)
	m.SetBit(0, 0)
	m.SetBit(1, 39)
	m.SetBit(2, 20)

	enc := m.Encoded()
	back, err := DecodeMatrix(40, enc)
	require.NoError(t, err)
	require.True(t, m.Equal(back))
}

func TestDecodeMatrixBadLength(t *testing.T) {
	_, err := DecodeMatrix(40, []byte{1, 2, 3})
	require.ErrorIs(t, err, utils.ErrEncoding)
}
