package matrix

import "errors"

var (
	// ErrDimension is returned when operand shapes do not satisfy the
	// matrix-algebra rule of the requested operation.
	ErrDimension = errors.New("matrix: dimension mismatch")

	// ErrBufferTooSmall is returned when a backing or auxiliary buffer is
	// shorter than the operation requires.
	ErrBufferTooSmall = errors.New("matrix: buffer too small")

	// ErrNotPositiveDefinite is returned by CholeskyLower when a
	// non-positive pivot is encountered, i.e. the input matrix is not
	// symmetric positive definite.
	ErrNotPositiveDefinite = errors.New("matrix: not positive definite")
)
