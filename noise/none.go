package noise

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// None is the absence of noise: its mean has length 0 and its covariance
// has zero size. It is distinct from Zero, which has a dimension.
type None struct{}

// NewNone creates new None noise.
func NewNone() (*None, error) {
	return &None{}, nil
}

// Sample returns a zero size vector.
func (n *None) Sample() mat.Vector {
	return &mat.VecDense{}
}

// Cov returns a zero size covariance matrix.
func (n *None) Cov() mat.Symmetric {
	return &mat.SymDense{}
}

// Mean returns a nil mean.
func (n *None) Mean() []float64 {
	return nil
}

// Reset does nothing.
func (n *None) Reset() error { return nil }

// String implements the Stringer interface.
func (n *None) String() string {
	return fmt.Sprintf("None{\nMean=%v\nCov=%v\n}", n.Mean(), mat.Formatted(n.Cov(), mat.Prefix("    "), mat.Squeeze()))
}
