// Package kalman implements a linear Kalman filter over caller-owned,
// statically sized buffers. The filter performs no allocation after
// construction and every step costs a bounded number of arithmetic
// operations determined only by the state, input and measurement counts,
// which makes it suitable for fixed-rate estimation loops.
//
// A Filter holds the state estimate x and its covariance P together with
// the model matrices A, B and Q; a Measurement binds one sensor model
// (H, R, z) and receives the innovation, residual covariance and gain of
// each correction. Predict and Correct mutate the bound buffers in place.
//
// A Filter and its Measurements must not be used from multiple goroutines
// concurrently: scratch buffers are reused across calls. Distinct filter
// instances are fully independent.
package kalman

import (
	"errors"
	"fmt"

	"github.com/statekit/kalman/matrix"
)

// ErrLambda is returned by Predict when the fading factor is outside the
// (0, 1] interval.
var ErrLambda = errors.New("kalman: lambda must be in (0, 1]")

// Filter is a linear Kalman filter bound to caller-owned buffers. All
// matrix fields are views; mutating their values between steps is the
// intended way to update the model.
type Filter struct {
	// A is the state transition matrix (numStates x numStates).
	A matrix.Matrix
	// X is the state estimate column vector (numStates x 1).
	X matrix.Matrix
	// B is the input transition matrix (numStates x numInputs). It is an
	// empty view when the filter was created without inputs.
	B matrix.Matrix
	// U is the input column vector (numInputs x 1).
	U matrix.Matrix
	// P is the state covariance matrix (numStates x numStates).
	P matrix.Matrix
	// Q is the input covariance matrix (numInputs x numInputs).
	Q matrix.Matrix

	numStates int
	numInputs int

	// step scratch, reused across calls
	aux        []float64
	predictedX matrix.Matrix
	tempP      matrix.Matrix
	tempBQ     matrix.Matrix
}

// FilterBuffers collects the buffers a Filter binds to. Each slice must
// hold at least rows*cols values for the shape documented on the Filter
// fields; Aux must hold at least max(numStates, numInputs) values. The
// input-related slices (B, U, Q, TempBQ) may be nil when the filter has no
// inputs.
type FilterBuffers struct {
	A []float64
	X []float64
	B []float64
	U []float64
	P []float64
	Q []float64

	// Aux is row-sized working memory for the multiply kernels.
	Aux []float64
	// PredictedX holds the propagated state before it is copied back.
	PredictedX []float64
	// TempP holds the A*P intermediate product.
	TempP []float64
	// TempBQ holds the B*Q intermediate product.
	TempBQ []float64
}

// NewFilterBuffers allocates correctly sized buffers for a filter with the
// given dimensions. Callers that manage memory themselves can fill a
// FilterBuffers with their own slices instead.
func NewFilterBuffers(numStates, numInputs int) *FilterBuffers {
	aux := numStates
	if numInputs > aux {
		aux = numInputs
	}

	return &FilterBuffers{
		A:          make([]float64, numStates*numStates),
		X:          make([]float64, numStates),
		B:          make([]float64, numStates*numInputs),
		U:          make([]float64, numInputs),
		P:          make([]float64, numStates*numStates),
		Q:          make([]float64, numInputs*numInputs),
		Aux:        make([]float64, aux),
		PredictedX: make([]float64, numStates),
		TempP:      make([]float64, numStates*numStates),
		TempBQ:     make([]float64, numStates*numInputs),
	}
}

// NewFilter creates a filter with numStates state variables and numInputs
// input variables bound to the supplied buffers. The buffers are aliased,
// not copied, and must outlive the filter. Every buffer size is validated
// up front; NewFilter returns an error wrapping matrix.ErrBufferTooSmall
// on the first undersized one, so a misconfigured filter fails at
// construction rather than corrupting memory mid-run.
//
// numInputs may be zero, in which case Predict skips the input covariance
// term entirely.
func NewFilter(numStates, numInputs int, bufs *FilterBuffers) (*Filter, error) {
	if numStates <= 0 || numInputs < 0 {
		return nil, fmt.Errorf("kalman: invalid filter dimensions [%d states, %d inputs]", numStates, numInputs)
	}

	if bufs == nil {
		return nil, fmt.Errorf("kalman: nil filter buffers")
	}

	f := &Filter{numStates: numStates, numInputs: numInputs}

	var err error
	if f.A, err = matrix.New(numStates, numStates, bufs.A); err != nil {
		return nil, fmt.Errorf("kalman: state transition matrix: %w", err)
	}
	if f.X, err = matrix.New(numStates, 1, bufs.X); err != nil {
		return nil, fmt.Errorf("kalman: state vector: %w", err)
	}
	if f.B, err = matrix.New(numStates, numInputs, bufs.B); err != nil {
		return nil, fmt.Errorf("kalman: input transition matrix: %w", err)
	}
	if f.U, err = matrix.New(numInputs, 1, bufs.U); err != nil {
		return nil, fmt.Errorf("kalman: input vector: %w", err)
	}
	if f.P, err = matrix.New(numStates, numStates, bufs.P); err != nil {
		return nil, fmt.Errorf("kalman: state covariance matrix: %w", err)
	}
	if f.Q, err = matrix.New(numInputs, numInputs, bufs.Q); err != nil {
		return nil, fmt.Errorf("kalman: input covariance matrix: %w", err)
	}

	aux := numStates
	if numInputs > aux {
		aux = numInputs
	}
	if len(bufs.Aux) < aux {
		return nil, fmt.Errorf("kalman: aux buffer: %w", matrix.ErrBufferTooSmall)
	}
	f.aux = bufs.Aux

	if f.predictedX, err = matrix.New(numStates, 1, bufs.PredictedX); err != nil {
		return nil, fmt.Errorf("kalman: predicted state buffer: %w", err)
	}
	if f.tempP, err = matrix.New(numStates, numStates, bufs.TempP); err != nil {
		return nil, fmt.Errorf("kalman: covariance scratch buffer: %w", err)
	}
	if f.tempBQ, err = matrix.New(numStates, numInputs, bufs.TempBQ); err != nil {
		return nil, fmt.Errorf("kalman: input covariance scratch buffer: %w", err)
	}

	return f, nil
}

// NumStates returns the number of state variables.
func (f *Filter) NumStates() int { return f.numStates }

// NumInputs returns the number of input variables.
func (f *Filter) NumInputs() int { return f.numInputs }

// State returns a copy of the current state estimate.
func (f *Filter) State() []float64 {
	out := make([]float64, f.numStates)
	copy(out, f.X.RawData())

	return out
}

// Covariance returns a row-major copy of the current state covariance.
func (f *Filter) Covariance() []float64 {
	out := make([]float64, f.numStates*f.numStates)
	copy(out, f.P.RawData())

	return out
}

// SetState copies state into the estimate vector.
// It returns error if the length of state does not match the filter state
// count.
func (f *Filter) SetState(state []float64) error {
	if len(state) != f.numStates {
		return fmt.Errorf("kalman: invalid state length %d, want %d: %w",
			len(state), f.numStates, matrix.ErrDimension)
	}

	copy(f.X.RawData(), state)

	return nil
}

// SetCov copies the row-major cov into the state covariance matrix.
// It returns error if cov does not hold exactly numStates*numStates
// values.
func (f *Filter) SetCov(cov []float64) error {
	if len(cov) != f.numStates*f.numStates {
		return fmt.Errorf("kalman: invalid covariance length %d, want %d: %w",
			len(cov), f.numStates*f.numStates, matrix.ErrDimension)
	}

	copy(f.P.RawData(), cov)

	return nil
}

// Predict performs the time update
//
//	x = A*x
//	P = A*P*Aᵀ * 1/lambda² + B*Q*Bᵀ
//
// mutating the state and covariance in place. lambda is a fading factor in
// (0, 1]: one leaves the propagated covariance untouched, smaller values
// inflate it to discount stale information when the model is known to be
// imperfect. The B*Q*Bᵀ term is skipped when the filter has no inputs.
func (f *Filter) Predict(lambda float64) error {
	if !(lambda > 0 && lambda <= 1) {
		return ErrLambda
	}

	// x = A*x
	if err := matrix.MultVec(f.A, f.X, f.predictedX); err != nil {
		return err
	}
	if err := matrix.Copy(f.predictedX, f.X); err != nil {
		return err
	}

	// P = A*P*Aᵀ * 1/lambda²
	scale := 1 / (lambda * lambda)
	if err := matrix.Mult(f.A, f.P, f.tempP, f.aux); err != nil {
		return err
	}
	if err := matrix.MultScaleTransB(f.tempP, f.A, scale, f.P); err != nil {
		return err
	}

	// P += B*Q*Bᵀ
	if f.numInputs > 0 {
		if err := matrix.Mult(f.B, f.Q, f.tempBQ, f.aux); err != nil {
			return err
		}
		if err := matrix.MultAddTransB(f.tempBQ, f.B, f.P); err != nil {
			return err
		}
	}

	return nil
}
