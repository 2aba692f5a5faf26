package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// randomSPD fills a view with A*Aᵀ + n*I, which is symmetric positive
// definite for any random A.
func randomSPD(t *testing.T, rnd *rand.Rand, n int) Matrix {
	t.Helper()

	a := randomView(t, rnd, n, n)
	spd := mustNew(t, n, n, make([]float64, n*n))
	if err := MultTransB(a, a, spd); err != nil {
		t.Fatalf("failed to build SPD matrix: %v", err)
	}
	for i := 0; i < n; i++ {
		spd.Set(i, i, spd.At(i, i)+float64(n))
	}

	return spd
}

func TestCholeskyLowerRoundTrip(t *testing.T) {
	assert := assert.New(t)
	rnd := rand.New(rand.NewSource(10))

	for _, n := range []int{1, 2, 5, 9} {
		spd := randomSPD(t, rnd, n)
		orig := dense(spd)

		assert.NoError(CholeskyLower(spd))

		// zero the untouched upper triangle before reconstructing
		l := mustNew(t, n, n, make([]float64, n*n))
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				l.Set(i, j, spd.At(i, j))
			}
		}

		recon := mustNew(t, n, n, make([]float64, n*n))
		assert.NoError(MultTransB(l, l, recon))
		assert.True(mat.EqualApprox(orig, dense(recon), 1e-9), "L*Lᵀ does not reproduce the input for n=%d", n)
	}
}

func TestCholeskyLowerAgainstReference(t *testing.T) {
	assert := assert.New(t)
	rnd := rand.New(rand.NewSource(11))

	n := 4
	spd := randomSPD(t, rnd, n)

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, spd.At(i, j))
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		t.Fatal("reference factorization failed")
	}
	want := new(mat.TriDense)
	chol.LTo(want)

	assert.NoError(CholeskyLower(spd))
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			assert.InDelta(want.At(i, j), spd.At(i, j), 1e-9)
		}
	}
}

func TestCholeskyLowerNotPositiveDefinite(t *testing.T) {
	assert := assert.New(t)

	// negative diagonal entry
	m := mustNew(t, 2, 2, []float64{-1, 0, 0, 1})
	assert.ErrorIs(CholeskyLower(m), ErrNotPositiveDefinite)

	// rank deficient
	m = mustNew(t, 2, 2, []float64{1, 1, 1, 1})
	assert.ErrorIs(CholeskyLower(m), ErrNotPositiveDefinite)
}

func TestCholeskyLowerNonSquare(t *testing.T) {
	assert := assert.New(t)

	m := mustNew(t, 2, 3, make([]float64, 6))
	assert.ErrorIs(CholeskyLower(m), ErrDimension)
}

func TestInvertLower(t *testing.T) {
	assert := assert.New(t)
	rnd := rand.New(rand.NewSource(12))

	for _, n := range []int{1, 3, 6} {
		spd := randomSPD(t, rnd, n)
		assert.NoError(CholeskyLower(spd))

		inv := mustNew(t, n, n, make([]float64, n*n))
		assert.NoError(InvertLower(spd, inv))

		// L⁻¹*L must be the identity; build L with a clean upper triangle.
		l := mustNew(t, n, n, make([]float64, n*n))
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				l.Set(i, j, spd.At(i, j))
			}
		}

		prod := mustNew(t, n, n, make([]float64, n*n))
		assert.NoError(Mult(inv, l, prod, make([]float64, n)))

		eye := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			eye.Set(i, i, 1)
		}
		assert.True(mat.EqualApprox(eye, dense(prod), 1e-9), "L⁻¹*L is not the identity for n=%d", n)
	}
}

func TestInvertLowerErrors(t *testing.T) {
	assert := assert.New(t)

	l := mustNew(t, 2, 2, []float64{1, 0, 2, 0})
	dst := mustNew(t, 2, 2, make([]float64, 4))
	assert.ErrorIs(InvertLower(l, dst), ErrNotPositiveDefinite)

	assert.ErrorIs(InvertLower(mustNew(t, 2, 3, make([]float64, 6)), dst), ErrDimension)
	assert.ErrorIs(InvertLower(mustNew(t, 2, 2, make([]float64, 4)), mustNew(t, 3, 3, make([]float64, 9))), ErrDimension)
}
