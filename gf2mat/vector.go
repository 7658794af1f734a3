// Package gf2mat implements dense bit-vector and bit-matrix arithmetic over
// GF(2), row-packed into 32-bit words (LSB-first), together with
// permutations of {0,...,n-1} (GF2Vector, GF2Matrix, Permutation).
package gf2mat

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/sqf-ice/pqcore/gf2m"
	"github.com/sqf-ice/pqcore/utils"
)

const wordBits = 32

// Vector is a dense bit-vector of GF(2)^n, packed LSB-first into
// ceil(n/32) 32-bit words. Unused high bits of the last word are always
// zero.
type Vector struct {
	length int
	words  []uint32
}

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

// NewVector returns the all-zero bit-vector of the given length.
func NewVector(length int) *Vector {
	return &Vector{length: length, words: make([]uint32, wordsFor(length))}
}

// Length returns the vector's length in bits.
func (v *Vector) Length() int { return v.length }

// Bit returns bit i (0 or 1).
func (v *Vector) Bit(i int) int {
	return int((v.words[i/wordBits] >> uint(i%wordBits)) & 1)
}

// SetBit sets bit i to 1.
func (v *Vector) SetBit(i int) {
	v.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// ClearBit sets bit i to 0.
func (v *Vector) ClearBit(i int) {
	v.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// IsZero reports whether every bit of the vector is 0.
func (v *Vector) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of v.
func (v *Vector) Clone() *Vector {
	w := make([]uint32, len(v.words))
	copy(w, v.words)
	return &Vector{length: v.length, words: w}
}

// XOR returns v XOR other. Panics if lengths differ, mirroring the package
// convention that shape mismatches are a programmer error surfaced before
// arithmetic, not a recoverable condition.
func (v *Vector) XOR(other *Vector) *Vector {
	if v.length != other.length {
		panic(fmt.Sprintf("gf2mat.Vector.XOR: length mismatch (%d != %d)", v.length, other.length))
	}
	out := NewVector(v.length)
	for i := range v.words {
		out.words[i] = v.words[i] ^ other.words[i]
	}
	return out
}

// PopCount returns the number of set bits, via math/bits.OnesCount32 (the
// standard library's hardware-popcount intrinsic path).
func (v *Vector) PopCount() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount32(w)
	}
	return n
}

// ToExtensionFieldVector reinterprets consecutive m-bit groups of v as
// elements of field, reading bits LSB-first across word boundaries. Fails
// with ErrInvalidInput if the vector's length is not a multiple of m.
func (v *Vector) ToExtensionFieldVector(field *gf2m.Field) (*gf2m.MVector, error) {
	m := field.M()
	if v.length%m != 0 {
		return nil, fmt.Errorf("gf2mat.Vector.ToExtensionFieldVector: %w: length %d is not a multiple of m=%d", utils.ErrInvalidInput, v.length, m)
	}
	n := v.length / m
	elems := make([]uint32, n)
	for e := 0; e < n; e++ {
		var x uint32
		for b := 0; b < m; b++ {
			bitIndex := e*m + b
			if v.Bit(bitIndex) != 0 {
				x |= 1 << uint(b)
			}
		}
		elems[e] = x
	}
	return gf2m.NewMVectorFromElements(field, elems)
}

// Encoded packs the vector into bytes: 4-byte little-endian words in order,
// the last word zero-padded above v.length.
func (v *Vector) Encoded() []byte {
	out := make([]byte, 4*len(v.words))
	for i, w := range v.words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// DecodeVector decodes a byte-packed bit-vector of the given bit length.
// Fails with ErrEncoding if the byte slice is not exactly 4*ceil(length/32)
// bytes, or if any padding bit above length in the last word is set.
func DecodeVector(length int, data []byte) (*Vector, error) {
	n := wordsFor(length)
	if len(data) != 4*n {
		return nil, fmt.Errorf("gf2mat.DecodeVector: %w: expected %d bytes, got %d", utils.ErrEncoding, 4*n, len(data))
	}
	v := NewVector(length)
	for i := 0; i < n; i++ {
		v.words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	if pad := length % wordBits; pad != 0 && n > 0 {
		mask := uint32(1)<<uint(pad) - 1
		if v.words[n-1]&^mask != 0 {
			return nil, fmt.Errorf("gf2mat.DecodeVector: %w: nonzero padding bits in last word", utils.ErrEncoding)
		}
	}
	return v, nil
}
