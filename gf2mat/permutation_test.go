package gf2mat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqf-ice/pqcore/utils"
)

func TestIdentityPermutation(t *testing.T) {
	p := NewIdentityPermutation(5)
	for i := 0; i < 5; i++ {
		require.Equal(t, i, p.At(i))
	}
}

func TestPermutationFromArrayValidation(t *testing.T) {
	_, err := NewPermutationFromArray([]int{0, 1, 1})
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = NewPermutationFromArray([]int{0, 3, 1})
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	p, err := NewPermutationFromArray([]int{2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 3, p.Length())
}

func TestPermutationInverse(t *testing.T) {
	p, err := NewPermutationFromArray([]int{2, 0, 1})
	require.NoError(t, err)
	inv := p.Inverse()
	for i := 0; i < p.Length(); i++ {
		require.Equal(t, i, inv.At(p.At(i)))
	}
}

func TestPermutationCompose(t *testing.T) {
	p, err := NewPermutationFromArray([]int{1, 0, 2})
	require.NoError(t, err)
	q, err := NewPermutationFromArray([]int{2, 1, 0})
	require.NoError(t, err)

	c, err := p.Compose(q)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.Equal(t, p.At(q.At(i)), c.At(i))
	}
}

func TestPermutationComposeLengthMismatch(t *testing.T) {
	p := NewIdentityPermutation(3)
	q := NewIdentityPermutation(4)
	_, err := p.Compose(q)
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestPermutationEqual(t *testing.T) {
	a, err := NewPermutationFromArray([]int{1, 0, 2})
	require.NoError(t, err)
	b, err := NewPermutationFromArray([]int{1, 0, 2})
	require.NoError(t, err)
	c, err := NewPermutationFromArray([]int{0, 1, 2})
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestRandomPermutationIsBijection(t *testing.T) {
	rng, err := utils.NewKeyedPRNG([]byte("permutation-seed"))
	require.NoError(t, err)
	p := NewRandomPermutation(20, rng)

	seen := make([]bool, 20)
	for i := 0; i < 20; i++ {
		v := p.At(i)
		require.False(t, seen[v])
		seen[v] = true
	}
}
