package gf2mat

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/klauspost/cpuid/v2"

	"github.com/sqf-ice/pqcore/utils"
)

// hasHardwarePopcount reports whether the running CPU exposes a native
// population-count instruction. It gates which of two equivalent row
// weight-counting paths Matrix.RowWeight takes; both produce the same
// result, the table-free path is just preferred when the hardware
// instruction is available.
var hasHardwarePopcount = cpuid.CPU.Supports(cpuid.POPCNT)

// Matrix is a dense row-major bit-matrix over GF(2); each row is a packed
// bit array of ceil(cols/32) words (GF2Matrix, C6). Padding bits above the
// declared column count in the last word of each row are always zero.
type Matrix struct {
	rows, cols int
	data       [][]uint32 // data[i] has len ceil(cols/32)
}

// NewMatrix returns the all-zero rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	m := &Matrix{rows: rows, cols: cols, data: make([][]uint32, rows)}
	w := wordsFor(cols)
	for i := range m.data {
		m.data[i] = make([]uint32, w)
	}
	return m
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.SetBit(i, i)
	}
	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// Bit returns the bit at (row, col).
func (m *Matrix) Bit(row, col int) int {
	return int((m.data[row][col/wordBits] >> uint(col%wordBits)) & 1)
}

// SetBit sets the bit at (row, col) to 1.
func (m *Matrix) SetBit(row, col int) {
	m.data[row][col/wordBits] |= 1 << uint(col%wordBits)
}

// ClearBit sets the bit at (row, col) to 0.
func (m *Matrix) ClearBit(row, col int) {
	m.data[row][col/wordBits] &^= 1 << uint(col%wordBits)
}

// FlipBit XORs the bit at (row, col) with 1.
func (m *Matrix) FlipBit(row, col int) {
	m.data[row][col/wordBits] ^= 1 << uint(col%wordBits)
}

// Row returns row i as a Vector, sharing no backing storage with m.
func (m *Matrix) Row(i int) *Vector {
	w := make([]uint32, len(m.data[i]))
	copy(w, m.data[i])
	return &Vector{length: m.cols, words: w}
}

// SetRow overwrites row i with v. Panics if v's length does not match the
// matrix's column count.
func (m *Matrix) SetRow(i int, v *Vector) {
	if v.length != m.cols {
		panic(fmt.Sprintf("gf2mat.Matrix.SetRow: length mismatch (%d != %d)", v.length, m.cols))
	}
	copy(m.data[i], v.words)
}

// RowWeight returns the Hamming weight (popcount) of row i. When the CPU
// lacks a native popcount instruction, words are summed via the
// Hamming-weight bit trick instead of math/bits' intrinsic-backed
// OnesCount32, since that function otherwise compiles to the very
// instruction this path is meant to avoid depending on.
func (m *Matrix) RowWeight(i int) int {
	n := 0
	if hasHardwarePopcount {
		for _, w := range m.data[i] {
			n += bits.OnesCount32(w)
		}
		return n
	}
	for _, w := range m.data[i] {
		n += popcountSWAR(w)
	}
	return n
}

// popcountSWAR counts set bits with the classic SIMD-within-a-register
// trick, used only on hardware without a native popcount instruction.
func popcountSWAR(w uint32) int {
	w = w - ((w >> 1) & 0x55555555)
	w = (w & 0x33333333) + ((w >> 2) & 0x33333333)
	w = (w + (w >> 4)) & 0x0f0f0f0f
	return int((w * 0x01010101) >> 24)
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}
	return out
}

// Equal reports whether m and other have the same shape and bits.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if m.data[i][j] != other.data[i][j] {
				return false
			}
		}
	}
	return true
}

// RightMultiply returns m*P where P is the column permutation matrix of
// perm: column j of the result is column perm.At(j) of m.
func (m *Matrix) RightMultiply(perm *Permutation) (*Matrix, error) {
	if perm.Length() != m.cols {
		return nil, fmt.Errorf("gf2mat.Matrix.RightMultiply: %w: permutation length %d does not match %d columns", utils.ErrInvalidInput, perm.Length(), m.cols)
	}
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.Bit(i, perm.At(j)) != 0 {
				out.SetBit(i, j)
			}
		}
	}
	return out, nil
}

// LeftSubMatrix returns the left m.rows columns (columns [0, rows)).
func (m *Matrix) LeftSubMatrix() *Matrix {
	return m.subMatrix(0, m.rows)
}

// RightSubMatrix returns the columns [rows, cols).
func (m *Matrix) RightSubMatrix() *Matrix {
	return m.subMatrix(m.rows, m.cols)
}

func (m *Matrix) subMatrix(from, to int) *Matrix {
	out := NewMatrix(m.rows, to-from)
	for i := 0; i < m.rows; i++ {
		for j := from; j < to; j++ {
			if m.Bit(i, j) != 0 {
				out.SetBit(i, j-from)
			}
		}
	}
	return out
}

// LeftMultiply returns v*m (v as a row vector), i.e. the XOR of every row i
// of m for which v.Bit(i) == 1. Panics if v's length does not match the
// matrix's row count.
func (m *Matrix) LeftMultiply(v *Vector) *Vector {
	if v.length != m.rows {
		panic(fmt.Sprintf("gf2mat.Matrix.LeftMultiply: length mismatch (%d != %d)", v.length, m.rows))
	}
	out := NewVector(m.cols)
	for i := 0; i < m.rows; i++ {
		if v.Bit(i) == 0 {
			continue
		}
		for w := range out.words {
			out.words[w] ^= m.data[i][w]
		}
	}
	return out
}

// MultiplyVector returns m*v (v as a column vector): bit i of the result is
// the GF(2) parity of (row i of m) AND v. Panics if v's length does not
// match the matrix's column count. This is the complementary operation to
// LeftMultiply, which instead treats v as a row vector on the left.
func (m *Matrix) MultiplyVector(v *Vector) *Vector {
	if v.length != m.cols {
		panic(fmt.Sprintf("gf2mat.Matrix.MultiplyVector: length mismatch (%d != %d)", v.length, m.cols))
	}
	out := NewVector(m.rows)
	for i := 0; i < m.rows; i++ {
		parity := uint32(0)
		for w := range v.words {
			parity ^= m.data[i][w] & v.words[w]
		}
		if bits.OnesCount32(parity)%2 == 1 {
			out.SetBit(i)
		}
	}
	return out
}

// Multiply returns the matrix product m*other. Fails with ErrInvalidInput
// if m's column count does not match other's row count.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("gf2mat.Matrix.Multiply: %w: inner dimensions mismatch (%d != %d)", utils.ErrInvalidInput, m.cols, other.rows)
	}
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		out.SetRow(i, other.LeftMultiply(m.Row(i)))
	}
	return out, nil
}

// ComputeInverse returns m^-1 via Gauss-Jordan elimination. Fails with
// ErrArithmetic if m is not square, or with an error wrapping both
// ErrArithmetic and ErrSingular (so both match errors.Is) if m is square but
// has no inverse - callers like compute_systematic_form that want to resample on exactly
// the singular case, rather than on every arithmetic failure, branch on
// errors.Is(err, ErrSingular).
func (m *Matrix) ComputeInverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("gf2mat.Matrix.ComputeInverse: %w: matrix is not square (%dx%d)", utils.ErrArithmetic, m.rows, m.cols)
	}
	n := m.rows
	work := m.Clone()
	inv := Identity(n)

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if work.Bit(row, col) != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("gf2mat.Matrix.ComputeInverse: %w: %w: matrix is singular at column %d", utils.ErrArithmetic, utils.ErrSingular, col)
		}
		if pivot != col {
			work.data[col], work.data[pivot] = work.data[pivot], work.data[col]
			inv.data[col], inv.data[pivot] = inv.data[pivot], inv.data[col]
		}
		for row := 0; row < n; row++ {
			if row == col || work.Bit(row, col) == 0 {
				continue
			}
			for w := range work.data[row] {
				work.data[row][w] ^= work.data[col][w]
			}
			for w := range inv.data[row] {
				inv.data[row][w] ^= inv.data[col][w]
			}
		}
	}
	return inv, nil
}

// Encoded packs the matrix: a 4-byte little-endian signed row-count prefix,
// then rows in row-major order, each row ceil(cols/32) words x 4 bytes
// little-endian.
func (m *Matrix) Encoded() []byte {
	w := wordsFor(m.cols)
	out := make([]byte, 4+m.rows*w*4)
	binary.LittleEndian.PutUint32(out[0:4], uint32(int32(m.rows)))
	off := 4
	for i := 0; i < m.rows; i++ {
		for j := 0; j < w; j++ {
			binary.LittleEndian.PutUint32(out[off:], m.data[i][j])
			off += 4
		}
	}
	return out
}

// DecodeMatrix decodes a byte-packed matrix of the given column count.
// Fails with ErrEncoding if the length is inconsistent with the declared
// row count and column count, or if any padding bit above cols in the last
// word of a row is set.
func DecodeMatrix(cols int, data []byte) (*Matrix, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("gf2mat.DecodeMatrix: %w: buffer too short for row-count prefix", utils.ErrEncoding)
	}
	rows := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if rows < 0 {
		return nil, fmt.Errorf("gf2mat.DecodeMatrix: %w: negative row count %d", utils.ErrEncoding, rows)
	}
	w := wordsFor(cols)
	expected := 4 + rows*w*4
	if len(data) != expected {
		return nil, fmt.Errorf("gf2mat.DecodeMatrix: %w: expected %d bytes, got %d", utils.ErrEncoding, expected, len(data))
	}
	m := NewMatrix(rows, cols)
	off := 4
	for i := 0; i < rows; i++ {
		for j := 0; j < w; j++ {
			m.data[i][j] = binary.LittleEndian.Uint32(data[off:])
			off += 4
		}
	}
	if pad := cols % wordBits; pad != 0 && w > 0 {
		mask := uint32(1)<<uint(pad) - 1
		for i := 0; i < rows; i++ {
			if m.data[i][w-1]&^mask != 0 {
				return nil, fmt.Errorf("gf2mat.DecodeMatrix: %w: nonzero padding bits in row %d", utils.ErrEncoding, i)
			}
		}
	}
	return m, nil
}
