package utils

// EqualInts reports whether a and b hold the same sequence of ints. This is
// the IntUtils (C2) equality primitive; Permutation, the vector types and
// polynomials compare with their own code rather than through it. Like the
// source, it is not constant-time: it exits on the first mismatch.
func EqualInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CloneInts returns a fresh copy of a.
func CloneInts(a []int) []int {
	b := make([]int, len(a))
	copy(b, a)
	return b
}

// EqualUint32s reports whether a and b hold the same sequence of uint32s.
func EqualUint32s(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CloneUint32s returns a fresh copy of a.
func CloneUint32s(a []uint32) []uint32 {
	b := make([]uint32, len(a))
	copy(b, a)
	return b
}
