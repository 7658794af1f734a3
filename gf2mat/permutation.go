package gf2mat

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sqf-ice/pqcore/utils"
)

// Permutation is a bijection of {0,...,n-1} (C7). Equality is array
// equality.
type Permutation struct {
	perm []int
}

// NewIdentityPermutation returns the identity permutation of length n.
func NewIdentityPermutation(n int) *Permutation {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &Permutation{perm: p}
}

// NewRandomPermutation builds a uniformly random permutation of length n by
// the Fisher-Yates shuffle, driven by rng.
func NewRandomPermutation(n int, rng utils.PRNG) *Permutation {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return &Permutation{perm: p}
}

// NewPermutationFromArray validates and wraps an explicit permutation
// array. Fails with ErrInvalidInput if any entry is out of range or any
// value is repeated.
func NewPermutationFromArray(perm []int) (*Permutation, error) {
	n := len(perm)
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("gf2mat.NewPermutationFromArray: %w: entry %d at index %d is out of range [0,%d)", utils.ErrInvalidInput, v, i, n)
		}
		if seen[v] {
			return nil, fmt.Errorf("gf2mat.NewPermutationFromArray: %w: duplicate entry %d", utils.ErrInvalidInput, v)
		}
		seen[v] = true
	}
	return &Permutation{perm: utils.CloneInts(perm)}, nil
}

// Length returns n, the size of the permuted set.
func (p *Permutation) Length() int { return len(p.perm) }

// At returns pi(i).
func (p *Permutation) At(i int) int { return p.perm[i] }

// Array returns a copy of the underlying permutation array.
func (p *Permutation) Array() []int { return utils.CloneInts(p.perm) }

// Equal reports array equality between p and other.
func (p *Permutation) Equal(other *Permutation) bool {
	return slices.Equal(p.perm, other.perm)
}

// Compose returns the permutation i -> p.At(other.At(i)), i.e. p . other.
func (p *Permutation) Compose(other *Permutation) (*Permutation, error) {
	if p.Length() != other.Length() {
		return nil, fmt.Errorf("gf2mat.Permutation.Compose: %w: length mismatch (%d != %d)", utils.ErrInvalidInput, p.Length(), other.Length())
	}
	out := make([]int, p.Length())
	for i := range out {
		out[i] = p.perm[other.perm[i]]
	}
	return &Permutation{perm: out}, nil
}

// Inverse returns pi^-1.
func (p *Permutation) Inverse() *Permutation {
	out := make([]int, len(p.perm))
	for i, v := range p.perm {
		out[v] = i
	}
	return &Permutation{perm: out}
}
