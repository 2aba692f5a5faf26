// Package noise provides random disturbance sources for driving simulated
// systems and exercising filters. The filter core itself never samples
// noise; these sources feed the sim package and the examples.
package noise

import "gonum.org/v1/gonum/mat"

// Source draws random disturbance vectors with a known mean and covariance.
type Source interface {
	// Mean returns the noise mean.
	Mean() []float64
	// Cov returns the noise covariance matrix.
	Cov() mat.Symmetric
	// Sample draws one noise vector.
	Sample() mat.Vector
	// Reset re-seeds the source.
	// It returns error if the source fails to re-seed.
	Reset() error
}
