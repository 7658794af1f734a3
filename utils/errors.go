// Package utils provides the small ambient helpers shared by the rest of
// pqcore: the error-kind sentinels, byte-array and big-integer primitives,
// and the default randomness collaborator.
package utils

import "errors"

// The error kinds of the core, matched with errors.Is by callers that need
// to branch on failure kind (e.g. the systematic-form loop resampling on
// ErrSingular). Operations wrap one of these with additional context via
// fmt.Errorf("...: %w", Err...) rather than defining bespoke error types.
var (
	// ErrConfig signals an out-of-range construction parameter (field
	// degree outside [2,31], unknown polynomial type, ...).
	ErrConfig = errors.New("config error")

	// ErrInvalidInput signals a malformed caller-supplied value: a
	// permutation array with duplicates or out-of-range entries, a vector
	// whose length disagrees with a permutation, and similar.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArithmetic signals an undefined algebraic operation: division by
	// the zero polynomial, inverse of the zero field element, inversion
	// of a singular matrix.
	ErrArithmetic = errors.New("arithmetic error")

	// ErrSingular is the specific ErrArithmetic cause raised by matrix
	// inversion on a singular matrix. It is distinguished from the
	// general ErrArithmetic case so that compute_systematic_form can
	// resample on exactly this condition instead of propagating every
	// arithmetic failure.
	ErrSingular = errors.New("singular matrix")

	// ErrEncoding signals a byte buffer that cannot be decoded: a length
	// not divisible by the per-coefficient size, a decoded value outside
	// the field, or a zero head coefficient in a polynomial of length > 1.
	ErrEncoding = errors.New("encoding error")

	// ErrDecoding signals that a syndrome is not a valid codeword
	// syndrome for the given Goppa code (T not invertible mod g).
	ErrDecoding = errors.New("decoding error")
)
