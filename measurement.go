package kalman

import (
	"fmt"

	"github.com/statekit/kalman/matrix"
)

// Measurement binds one sensor model to a filter state dimension. H maps
// state space into measurement space, R is the measurement uncertainty and
// Z receives the raw measurement before each correction; Y, S and K are
// filled by Correct. Like the Filter, a Measurement owns no memory: all
// fields are views over caller-supplied buffers.
type Measurement struct {
	// H is the measurement transformation matrix (numMeasurements x numStates).
	H matrix.Matrix
	// Z is the raw measurement column vector (numMeasurements x 1).
	Z matrix.Matrix
	// R is the measurement uncertainty matrix (numMeasurements x numMeasurements).
	R matrix.Matrix
	// Y is the innovation column vector (numMeasurements x 1).
	Y matrix.Matrix
	// S is the residual covariance matrix (numMeasurements x numMeasurements).
	// After a successful Correct its lower triangle holds the Cholesky
	// factor of H*P*Hᵀ + R.
	S matrix.Matrix
	// K is the Kalman gain matrix (numStates x numMeasurements).
	K matrix.Matrix

	numStates       int
	numMeasurements int

	// correction scratch, reused across calls
	aux     []float64
	tempHP  matrix.Matrix // numMeasurements x numStates, shares Temp
	tempPH  matrix.Matrix // numStates x numMeasurements, shares Temp
	sInv    matrix.Matrix // inverted lower Cholesky factor of S
	tempKHP matrix.Matrix // numStates x numStates
}

// MeasurementBuffers collects the buffers a Measurement binds to. Each
// slice must hold at least rows*cols values for the shape documented on
// the Measurement fields. Aux must hold at least max(numStates,
// numMeasurements) values and Temp at least numStates*numMeasurements; both
// are working memory whose content is meaningless between calls.
type MeasurementBuffers struct {
	H []float64
	Z []float64
	R []float64
	Y []float64
	S []float64
	K []float64

	// Aux is row-sized working memory for the multiply kernels.
	Aux []float64
	// Temp holds the H*P and P*Hᵀ intermediate products.
	Temp []float64
	// SInv holds the inverted Cholesky factor of S.
	SInv []float64
	// TempKHP holds the K*(H*P) covariance correction term.
	TempKHP []float64
}

// NewMeasurementBuffers allocates correctly sized buffers for a
// measurement binding with the given dimensions.
func NewMeasurementBuffers(numStates, numMeasurements int) *MeasurementBuffers {
	aux := numStates
	if numMeasurements > aux {
		aux = numMeasurements
	}

	return &MeasurementBuffers{
		H:       make([]float64, numMeasurements*numStates),
		Z:       make([]float64, numMeasurements),
		R:       make([]float64, numMeasurements*numMeasurements),
		Y:       make([]float64, numMeasurements),
		S:       make([]float64, numMeasurements*numMeasurements),
		K:       make([]float64, numStates*numMeasurements),
		Aux:     make([]float64, aux),
		Temp:    make([]float64, numStates*numMeasurements),
		SInv:    make([]float64, numMeasurements*numMeasurements),
		TempKHP: make([]float64, numStates*numStates),
	}
}

// NewMeasurement creates a measurement binding for a filter with numStates
// state variables and a sensor producing numMeasurements values, bound to
// the supplied buffers. The buffers are aliased, not copied, and must
// outlive the binding. All sizes are validated up front, mirroring
// NewFilter.
func NewMeasurement(numStates, numMeasurements int, bufs *MeasurementBuffers) (*Measurement, error) {
	if numStates <= 0 || numMeasurements <= 0 {
		return nil, fmt.Errorf("kalman: invalid measurement dimensions [%d states, %d measurements]", numStates, numMeasurements)
	}

	if bufs == nil {
		return nil, fmt.Errorf("kalman: nil measurement buffers")
	}

	m := &Measurement{numStates: numStates, numMeasurements: numMeasurements}

	var err error
	if m.H, err = matrix.New(numMeasurements, numStates, bufs.H); err != nil {
		return nil, fmt.Errorf("kalman: measurement transformation matrix: %w", err)
	}
	if m.Z, err = matrix.New(numMeasurements, 1, bufs.Z); err != nil {
		return nil, fmt.Errorf("kalman: measurement vector: %w", err)
	}
	if m.R, err = matrix.New(numMeasurements, numMeasurements, bufs.R); err != nil {
		return nil, fmt.Errorf("kalman: measurement uncertainty matrix: %w", err)
	}
	if m.Y, err = matrix.New(numMeasurements, 1, bufs.Y); err != nil {
		return nil, fmt.Errorf("kalman: innovation vector: %w", err)
	}
	if m.S, err = matrix.New(numMeasurements, numMeasurements, bufs.S); err != nil {
		return nil, fmt.Errorf("kalman: residual covariance matrix: %w", err)
	}
	if m.K, err = matrix.New(numStates, numMeasurements, bufs.K); err != nil {
		return nil, fmt.Errorf("kalman: gain matrix: %w", err)
	}

	aux := numStates
	if numMeasurements > aux {
		aux = numMeasurements
	}
	if len(bufs.Aux) < aux {
		return nil, fmt.Errorf("kalman: aux buffer: %w", matrix.ErrBufferTooSmall)
	}
	m.aux = bufs.Aux

	// Both orientations of the intermediate product view the same buffer;
	// they are never live at the same time during a correction.
	if m.tempHP, err = matrix.New(numMeasurements, numStates, bufs.Temp); err != nil {
		return nil, fmt.Errorf("kalman: correction scratch buffer: %w", err)
	}
	if m.tempPH, err = matrix.New(numStates, numMeasurements, bufs.Temp); err != nil {
		return nil, fmt.Errorf("kalman: correction scratch buffer: %w", err)
	}
	if m.sInv, err = matrix.New(numMeasurements, numMeasurements, bufs.SInv); err != nil {
		return nil, fmt.Errorf("kalman: inverse factor buffer: %w", err)
	}
	if m.tempKHP, err = matrix.New(numStates, numStates, bufs.TempKHP); err != nil {
		return nil, fmt.Errorf("kalman: covariance correction buffer: %w", err)
	}

	return m, nil
}

// NumStates returns the state dimension the binding was created for.
func (m *Measurement) NumStates() int { return m.numStates }

// NumMeasurements returns the number of measurement variables.
func (m *Measurement) NumMeasurements() int { return m.numMeasurements }

// Innovation returns a copy of the innovation computed by the last
// correction.
func (m *Measurement) Innovation() []float64 {
	out := make([]float64, m.numMeasurements)
	copy(out, m.Y.RawData())

	return out
}

// Gain returns a row-major copy of the gain computed by the last
// correction.
func (m *Measurement) Gain() []float64 {
	out := make([]float64, m.numStates*m.numMeasurements)
	copy(out, m.K.RawData())

	return out
}
