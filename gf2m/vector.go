package gf2m

import (
	"fmt"

	"github.com/sqf-ice/pqcore/utils"
)

// Vector is the interface shared by MVector (GF2mVector, this package) and
// gf2mat.Vector (GF2Vector): both report their length, encode to bytes, and
// test for zero. The interface has no addition and no permutation method;
// addition exists only on the concrete types (MVector.Add,
// gf2mat.Vector.XOR), and neither type can be multiplied by a permutation.
type Vector interface {
	Length() int
	Encoded() []byte
	IsZero() bool
}

// MVector is a length-bounded vector of GF(2^m) elements (spec.md C4,
// GF2mVector).
type MVector struct {
	field *Field
	elems []uint32
}

// NewMVector creates a vector of the given length with all elements zero.
func NewMVector(field *Field, length int) *MVector {
	return &MVector{field: field, elems: make([]uint32, length)}
}

// NewMVectorFromElements creates a vector from an explicit element slice,
// validating that every element lies in the field.
func NewMVectorFromElements(field *Field, elems []uint32) (*MVector, error) {
	for i, e := range elems {
		if !field.IsElement(e) {
			return nil, fmt.Errorf("gf2m.NewMVectorFromElements: %w: element %d at index %d is not in GF(2^%d)", utils.ErrInvalidInput, e, i, field.M())
		}
	}
	v := &MVector{field: field, elems: utils.CloneUint32s(elems)}
	return v, nil
}

// Field returns the vector's underlying field.
func (v *MVector) Field() *Field { return v.field }

// Length returns the number of elements.
func (v *MVector) Length() int { return len(v.elems) }

// At returns the element at index i.
func (v *MVector) At(i int) uint32 { return v.elems[i] }

// Set sets the element at index i, validating field membership.
func (v *MVector) Set(i int, x uint32) error {
	if !v.field.IsElement(x) {
		return fmt.Errorf("gf2m.MVector.Set: %w: element %d is not in GF(2^%d)", utils.ErrInvalidInput, x, v.field.M())
	}
	v.elems[i] = x
	return nil
}

// IsZero reports whether every element of the vector is 0.
func (v *MVector) IsZero() bool {
	for _, e := range v.elems {
		if e != 0 {
			return false
		}
	}
	return true
}

// Add returns the coefficient-wise (characteristic-2) sum of v and other.
// This is the Vector.add path that spec.md §9 notes is left unimplemented
// in the source ("an implementer should provide coefficient-wise XOR with
// field-element validation") - implemented here accordingly. Fails with
// ErrInvalidInput if the vectors differ in length or field.
func (v *MVector) Add(other *MVector) (*MVector, error) {
	if v.Length() != other.Length() {
		return nil, fmt.Errorf("gf2m.MVector.Add: %w: length mismatch (%d != %d)", utils.ErrInvalidInput, v.Length(), other.Length())
	}
	if !v.field.Equal(other.field) {
		return nil, fmt.Errorf("gf2m.MVector.Add: %w: fields differ", utils.ErrInvalidInput)
	}
	out := NewMVector(v.field, v.Length())
	for i := range v.elems {
		out.elems[i] = v.field.Add(v.elems[i], other.elems[i])
	}
	return out, nil
}

// bytesPerElement returns ceil(m/8), the number of bytes used to encode one
// field element.
func (v *MVector) bytesPerElement() int {
	return (v.field.M() + 7) / 8
}

// Encoded packs the vector into bytes: ceil(m/8) bytes per element,
// little-endian within each element.
func (v *MVector) Encoded() []byte {
	bpe := v.bytesPerElement()
	out := make([]byte, bpe*len(v.elems))
	for i, e := range v.elems {
		for b := 0; b < bpe; b++ {
			out[i*bpe+b] = byte(e >> uint(8*b))
		}
	}
	return out
}

// DecodeMVector decodes a byte-packed vector over field. Fails with
// ErrEncoding if the byte length is not a multiple of ceil(m/8), or if any
// decoded element is outside the field.
func DecodeMVector(field *Field, data []byte) (*MVector, error) {
	bpe := (field.M() + 7) / 8
	if len(data)%bpe != 0 {
		return nil, fmt.Errorf("gf2m.DecodeMVector: %w: length %d is not a multiple of %d bytes/element", utils.ErrEncoding, len(data), bpe)
	}
	n := len(data) / bpe
	v := NewMVector(field, n)
	for i := 0; i < n; i++ {
		var e uint32
		for b := 0; b < bpe; b++ {
			e |= uint32(data[i*bpe+b]) << uint(8*b)
		}
		if !field.IsElement(e) {
			return nil, fmt.Errorf("gf2m.DecodeMVector: %w: decoded element %d at index %d is not in GF(2^%d)", utils.ErrEncoding, e, i, field.M())
		}
		v.elems[i] = e
	}
	return v, nil
}
