package kalman

import (
	"fmt"

	"github.com/statekit/kalman/matrix"
)

// Correct performs the measurement update
//
//	y = z - H*x
//	S = H*P*Hᵀ + R
//	K = P*Hᵀ * S⁻¹
//	x = x + K*y
//	P = P - K*(H*P)
//
// mutating x and P in place and filling m.Y, m.S and m.K. The residual
// covariance is inverted through its lower Cholesky factor, never through
// a general matrix inverse.
//
// If S is not positive definite the decomposition fails and Correct
// returns an error wrapping matrix.ErrNotPositiveDefinite with x and P
// untouched, so a caller can skip the update for the cycle; m.Y holds the
// innovation and m.S partially decomposed garbage in that case.
func (f *Filter) Correct(m *Measurement) error {
	if m == nil {
		return fmt.Errorf("kalman: nil measurement: %w", matrix.ErrDimension)
	}

	if m.numStates != f.numStates {
		return fmt.Errorf("kalman: measurement bound to %d states, filter has %d: %w",
			m.numStates, f.numStates, matrix.ErrDimension)
	}

	// y = z - H*x
	if err := matrix.MultVec(m.H, f.X, m.Y); err != nil {
		return err
	}
	if err := matrix.SubFrom(m.Z, m.Y); err != nil {
		return err
	}

	// S = H*P*Hᵀ + R
	if err := matrix.Mult(m.H, f.P, m.tempHP, m.aux); err != nil {
		return err
	}
	if err := matrix.MultTransB(m.tempHP, m.H, m.S); err != nil {
		return err
	}
	if err := matrix.AddTo(m.S, m.R); err != nil {
		return err
	}

	// K = P*Hᵀ * S⁻¹ with S = L*Lᵀ, so K = P*Hᵀ * L⁻ᵀ*L⁻¹
	if err := matrix.CholeskyLower(m.S); err != nil {
		return fmt.Errorf("kalman: residual covariance: %w", err)
	}
	if err := matrix.InvertLower(m.S, m.sInv); err != nil {
		return fmt.Errorf("kalman: residual covariance: %w", err)
	}
	if err := matrix.MultTransB(f.P, m.H, m.tempPH); err != nil {
		return err
	}
	if err := matrix.MultTransB(m.tempPH, m.sInv, m.K); err != nil {
		return err
	}
	if err := matrix.Mult(m.K, m.sInv, m.tempPH, m.aux); err != nil {
		return err
	}
	if err := matrix.Copy(m.tempPH, m.K); err != nil {
		return err
	}

	// x = x + K*y
	if err := matrix.MultAddVec(m.K, m.Y, f.X); err != nil {
		return err
	}

	// P = P - K*(H*P)
	//
	// The short-form update is cheap but does not preserve symmetry
	// exactly under roundoff; long-running callers that observe drift
	// should re-symmetrize P between cycles.
	if err := matrix.Mult(m.H, f.P, m.tempHP, m.aux); err != nil {
		return err
	}
	if err := matrix.Mult(m.K, m.tempHP, m.tempKHP, m.aux); err != nil {
		return err
	}

	return matrix.Sub(f.P, m.tempKHP, f.P)
}
