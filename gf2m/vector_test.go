package gf2m

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqf-ice/pqcore/utils"
)

func TestMVectorBasic(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)

	v := NewMVector(f, 3)
	require.True(t, v.IsZero())
	require.Equal(t, 3, v.Length())

	require.NoError(t, v.Set(0, 5))
	require.NoError(t, v.Set(1, 10))
	require.False(t, v.IsZero())
	require.Equal(t, uint32(5), v.At(0))

	err = v.Set(2, 16) // out of range for GF(2^4)
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestMVectorFromElementsValidation(t *testing.T) {
	f, err := NewField(3)
	require.NoError(t, err)
	_, err = NewMVectorFromElements(f, []uint32{1, 2, 8})
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	v, err := NewMVectorFromElements(f, []uint32{1, 2, 7})
	require.NoError(t, err)
	require.Equal(t, 3, v.Length())
}

func TestMVectorAdd(t *testing.T) {
	f, err := NewField(4)
	require.NoError(t, err)
	a, err := NewMVectorFromElements(f, []uint32{1, 2, 3})
	require.NoError(t, err)
	b, err := NewMVectorFromElements(f, []uint32{1, 2, 3})
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.True(t, sum.IsZero())

	c, err := NewMVectorFromElements(f, []uint32{1, 2})
	require.NoError(t, err)
	_, err = a.Add(c)
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestMVectorAddDifferentFields(t *testing.T) {
	f4, err := NewField(4)
	require.NoError(t, err)
	f5, err := NewField(5)
	require.NoError(t, err)
	a, err := NewMVectorFromElements(f4, []uint32{1, 2})
	require.NoError(t, err)
	b, err := NewMVectorFromElements(f5, []uint32{1, 2})
	require.NoError(t, err)
	_, err = a.Add(b)
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestMVectorEncodeDecodeRoundTrip(t *testing.T) {
	f, err := NewField(10) // ceil(10/8) = 2 bytes/element
	require.NoError(t, err)
	v, err := NewMVectorFromElements(f, []uint32{0, 1, 1023, 512, 7})
	require.NoError(t, err)

	enc := v.Encoded()
	require.Equal(t, 2*5, len(enc))

	back, err := DecodeMVector(f, enc)
	require.NoError(t, err)
	require.Equal(t, v.Length(), back.Length())
	for i := 0; i < v.Length(); i++ {
		require.Equal(t, v.At(i), back.At(i))
	}
}

func TestMVectorDecodeBadLength(t *testing.T) {
	f, err := NewField(10)
	require.NoError(t, err)
	_, err = DecodeMVector(f, []byte{1, 2, 3})
	require.ErrorIs(t, err, utils.ErrEncoding)
}

func TestMVectorDecodeOutOfRangeElement(t *testing.T) {
	f, err := NewField(3) // 1 byte/element, valid range [0,7]
	require.NoError(t, err)
	_, err = DecodeMVector(f, []byte{0xff})
	require.ErrorIs(t, err, utils.ErrEncoding)
}
