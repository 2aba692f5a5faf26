package matrix

import "math"

// CholeskyLower decomposes the symmetric positive definite matrix m into
// its lower Cholesky factor L, such that L*Lᵀ = m, in place. Only the
// lower triangle including the diagonal is written; the upper triangle is
// left untouched and must be ignored by the caller. Only the lower triangle
// of the input is read, so an input with a stale upper triangle is fine.
//
// It returns ErrDimension if m is not square and ErrNotPositiveDefinite if
// a non-positive pivot turns up, in which case m is left partially
// decomposed and must be considered garbage.
func CholeskyLower(m Matrix) error {
	if m.rows != m.cols {
		return ErrDimension
	}

	n := m.rows
	for j := 0; j < n; j++ {
		pivot := m.data[j*n+j]
		for k := 0; k < j; k++ {
			ljk := m.data[j*n+k]
			pivot -= ljk * ljk
		}

		if pivot <= 0 {
			return ErrNotPositiveDefinite
		}

		pivot = math.Sqrt(pivot)
		m.data[j*n+j] = pivot

		for i := j + 1; i < n; i++ {
			total := m.data[i*n+j]
			for k := 0; k < j; k++ {
				total -= m.data[i*n+k] * m.data[j*n+k]
			}
			m.data[i*n+j] = total / pivot
		}
	}

	return nil
}

// InvertLower computes dst = l⁻¹ by forward substitution, where l is a
// lower triangular factor as produced by CholeskyLower. Only the lower
// triangle of l is read; dst is fully written, with zeros above the
// diagonal. dst must not overlap l.
//
// It returns ErrDimension if the views are not square with equal sizes and
// ErrNotPositiveDefinite if a diagonal entry of l is zero.
func InvertLower(l, dst Matrix) error {
	if l.rows != l.cols || dst.rows != l.rows || dst.cols != l.cols {
		return ErrDimension
	}

	n := l.rows
	for j := 0; j < n; j++ {
		if l.data[j*n+j] == 0 {
			return ErrNotPositiveDefinite
		}

		for i := 0; i < j; i++ {
			dst.data[i*n+j] = 0
		}
		dst.data[j*n+j] = 1 / l.data[j*n+j]

		for i := j + 1; i < n; i++ {
			var total float64
			for k := j; k < i; k++ {
				total += l.data[i*n+k] * dst.data[k*n+j]
			}
			dst.data[i*n+j] = -total / l.data[i*n+i]
		}
	}

	return nil
}
