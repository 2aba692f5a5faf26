// Package matrix implements dense linear algebra over caller-owned,
// row-major float64 buffers. A Matrix is a plain view: it never allocates,
// resizes or frees its storage, which makes every operation in this package
// safe to call from code that must not touch the heap, e.g. a filter loop
// running at a fixed rate.
//
// Operations validate operand shapes and return ErrDimension on mismatch.
// Unless an operation is documented as in-place, its destination must not
// overlap any of its sources; overlap is not detected.
package matrix

// Matrix is a view of caller-owned storage holding rows x cols values in
// row-major order. The zero value is an empty matrix. Copying a Matrix
// copies the view, not the data.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a rows x cols view over data. The view aliases data; it does
// not copy. It returns ErrBufferTooSmall if data holds fewer than rows*cols
// values and ErrDimension if either dimension is negative.
func New(rows, cols int, data []float64) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, ErrDimension
	}

	if len(data) < rows*cols {
		return Matrix{}, ErrBufferTooSmall
	}

	return Matrix{rows: rows, cols: cols, data: data[:rows*cols]}, nil
}

// Dims returns the number of rows and columns of the view.
func (m Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// IsEmpty reports whether the view has no elements.
func (m Matrix) IsEmpty() bool {
	return m.rows == 0 || m.cols == 0
}

// At returns the value at row i, column j. Indices are not bounds-checked.
func (m Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j. Indices are not bounds-checked.
func (m Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Row returns the i-th row of the view as a slice aliasing the backing
// buffer.
func (m Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// RawData returns the backing slice of the view.
func (m Matrix) RawData() []float64 {
	return m.data
}

// Mult computes dst = a*b. aux is working memory used to cache one column
// of b at a time so the inner loop walks both operands contiguously; it
// must hold at least b's row count and its content is meaningless after
// the call. dst must not overlap a, b or aux.
func Mult(a, b, dst Matrix, aux []float64) error {
	if a.cols != b.rows || dst.rows != a.rows || dst.cols != b.cols {
		return ErrDimension
	}

	if len(aux) < b.rows {
		return ErrBufferTooSmall
	}

	for j := 0; j < b.cols; j++ {
		for k := 0; k < b.rows; k++ {
			aux[k] = b.data[k*b.cols+j]
		}

		for i := 0; i < a.rows; i++ {
			row := a.Row(i)
			var total float64
			for k := range row {
				total += row[k] * aux[k]
			}
			dst.data[i*dst.cols+j] = total
		}
	}

	return nil
}

// MultTransB computes dst = a*bᵀ. Both operands are walked row-wise, so no
// auxiliary buffer is needed. dst must not overlap a or b.
func MultTransB(a, b, dst Matrix) error {
	if a.cols != b.cols || dst.rows != a.rows || dst.cols != b.rows {
		return ErrDimension
	}

	for i := 0; i < a.rows; i++ {
		arow := a.Row(i)
		for j := 0; j < b.rows; j++ {
			brow := b.Row(j)
			var total float64
			for k := range arow {
				total += arow[k] * brow[k]
			}
			dst.data[i*dst.cols+j] = total
		}
	}

	return nil
}

// MultScaleTransB computes dst = a*bᵀ*scale. dst must not overlap a or b.
func MultScaleTransB(a, b Matrix, scale float64, dst Matrix) error {
	if a.cols != b.cols || dst.rows != a.rows || dst.cols != b.rows {
		return ErrDimension
	}

	for i := 0; i < a.rows; i++ {
		arow := a.Row(i)
		for j := 0; j < b.rows; j++ {
			brow := b.Row(j)
			var total float64
			for k := range arow {
				total += arow[k] * brow[k]
			}
			dst.data[i*dst.cols+j] = total * scale
		}
	}

	return nil
}

// MultAddTransB computes dst += a*bᵀ. dst must not overlap a or b.
func MultAddTransB(a, b, dst Matrix) error {
	if a.cols != b.cols || dst.rows != a.rows || dst.cols != b.rows {
		return ErrDimension
	}

	for i := 0; i < a.rows; i++ {
		arow := a.Row(i)
		for j := 0; j < b.rows; j++ {
			brow := b.Row(j)
			var total float64
			for k := range arow {
				total += arow[k] * brow[k]
			}
			dst.data[i*dst.cols+j] += total
		}
	}

	return nil
}

// MultVec computes dst = a*x where x and dst are column vectors. dst must
// not overlap a or x.
func MultVec(a, x, dst Matrix) error {
	if x.cols != 1 || dst.cols != 1 || a.cols != x.rows || dst.rows != a.rows {
		return ErrDimension
	}

	for i := 0; i < a.rows; i++ {
		row := a.Row(i)
		var total float64
		for k := range row {
			total += row[k] * x.data[k]
		}
		dst.data[i] = total
	}

	return nil
}

// MultAddVec computes dst += a*x where x and dst are column vectors. dst
// must not overlap a or x.
func MultAddVec(a, x, dst Matrix) error {
	if x.cols != 1 || dst.cols != 1 || a.cols != x.rows || dst.rows != a.rows {
		return ErrDimension
	}

	for i := 0; i < a.rows; i++ {
		row := a.Row(i)
		var total float64
		for k := range row {
			total += row[k] * x.data[k]
		}
		dst.data[i] += total
	}

	return nil
}

// Sub computes dst = a - b elementwise. dst may alias a.
func Sub(a, b, dst Matrix) error {
	if a.rows != b.rows || a.cols != b.cols || dst.rows != a.rows || dst.cols != a.cols {
		return ErrDimension
	}

	for i := range dst.data {
		dst.data[i] = a.data[i] - b.data[i]
	}

	return nil
}

// SubFrom computes b = a - b in place.
func SubFrom(a, b Matrix) error {
	if a.rows != b.rows || a.cols != b.cols {
		return ErrDimension
	}

	for i := range b.data {
		b.data[i] = a.data[i] - b.data[i]
	}

	return nil
}

// AddTo computes a += b in place.
func AddTo(a, b Matrix) error {
	if a.rows != b.rows || a.cols != b.cols {
		return ErrDimension
	}

	for i := range a.data {
		a.data[i] += b.data[i]
	}

	return nil
}

// Copy copies src values into dst. The views must have equal shapes.
func Copy(src, dst Matrix) error {
	if src.rows != dst.rows || src.cols != dst.cols {
		return ErrDimension
	}

	copy(dst.data, src.data)

	return nil
}
