// Package sim provides linear dynamical system models for generating truth
// and measurement sequences when exercising a filter. Models here use
// gonum matrices and allocate freely; they belong in tests, examples and
// tooling, not in the estimation loop itself.
package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is a linear model of a plant in the traditional state-space
// matrices of modern control theory: state transition A, input B,
// observation C and feedthrough D.
type System struct {
	// A is the state transition matrix
	A *mat.Dense
	// B is the input matrix
	B *mat.Dense
	// C is the observation matrix
	C *mat.Dense
	// D is the feedthrough matrix
	D *mat.Dense
}

func newSystem(A, B, C, D *mat.Dense) System {
	sys := System{A: mat.DenseCopyOf(A)}
	if B != nil {
		sys.B = mat.DenseCopyOf(B)
	}
	if C != nil {
		sys.C = mat.DenseCopyOf(C)
	}
	if D != nil {
		sys.D = mat.DenseCopyOf(D)
	}

	return sys
}

// Dims returns the state (nx), input (nu) and output (ny) dimensions of
// the system.
func (s System) Dims() (nx, nu, ny int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}

	return nx, nu, ny
}

// Observe returns the system output for state x and input u, with the
// noise vector wn added when it matches the output dimension.
// It returns error if x or u have invalid dimensions.
func (s System) Observe(x, u, wn mat.Vector) (mat.Vector, error) {
	nx, nu, ny := s.Dims()
	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	out := new(mat.Dense)
	out.Mul(s.C, x)

	if u != nil && s.D != nil {
		outU := new(mat.Dense)
		outU.Mul(s.D, u)
		out.Add(out, outU)
	}

	if wn != nil && wn.Len() == ny {
		out.Add(out, wn)
	}

	return out.ColView(0), nil
}
