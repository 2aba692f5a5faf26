package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Discrete is a linear, discrete-time dynamical system
//
//	x[n+1] = A*x[n] + B*u[n]
//	y[n]   = C*x[n] + D*u[n]
type Discrete struct {
	System
}

// NewDiscrete creates a linear discrete-time model from the given system
// matrices. The matrices are copied. It returns error if A is nil.
func NewDiscrete(A, B, C, D *mat.Dense) (*Discrete, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	return &Discrete{System: newSystem(A, B, C, D)}, nil
}

// Propagate returns the next state of the system for state x and input u,
// with the process noise vector wd added when it matches the state
// dimension. It returns error if x or u have invalid dimensions.
func (d *Discrete) Propagate(x, u, wd mat.Vector) (mat.Vector, error) {
	nx, nu, _ := d.Dims()
	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	out := new(mat.Dense)
	out.Mul(d.A, x)

	if u != nil && d.B != nil {
		outU := new(mat.Dense)
		outU.Mul(d.B, u)
		out.Add(out, outU)
	}

	if wd != nil && wd.Len() == nx {
		out.Add(out, wd)
	}

	return out.ColView(0), nil
}
