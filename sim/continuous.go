package sim

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Continuous is a linear, continuous-time dynamical system
//
//	dx/dt = A*x + B*u
//	y     = C*x + D*u
type Continuous struct {
	System
}

// NewContinuous creates a linear continuous-time model from the given
// system matrices. The matrices are copied. It returns error if A is nil.
func NewContinuous(A, B, C, D *mat.Dense) (*Continuous, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}

	return &Continuous{System: newSystem(A, B, C, D)}, nil
}

// ToDiscrete converts the model into a discrete-time model with sampling
// time ts.
//
// The state matrix is discretized exactly, Ad = exp(A*ts). When A is not
// singular the input matrix follows in closed form as
// Bd = (exp(A*ts) - I)*A⁻¹*B; otherwise the matrix exponential integral is
// evaluated numerically. See Ogata, Discrete-Time Control Systems, eq.
// (5-73) and (5-74).
func (c *Continuous) ToDiscrete(ts float64) (*Discrete, error) {
	if ts <= 0 {
		return nil, fmt.Errorf("invalid sampling time: %v", ts)
	}

	nx, _, _ := c.Dims()
	dsys := newSystem(c.A, c.B, c.C, c.D)

	dsys.A.Scale(ts, dsys.A)
	dsys.A.Exp(dsys.A)

	if c.B == nil {
		return &Discrete{System: dsys}, nil
	}

	eye, err := matrix.NewDenseValIdentity(nx, 1.0)
	if err != nil {
		return nil, err
	}

	aux := mat.NewDense(nx, nx, nil)
	aInv := mat.NewDense(nx, nx, nil)
	if err := aInv.Inverse(c.A); err == nil {
		aux.Sub(dsys.A, eye)
		aux.Mul(aux, aInv)
		dsys.B.Mul(aux, c.B)

		return &Discrete{System: dsys}, nil
	}

	// A is singular: integrate exp(A*t) over [0, ts] numerically.
	const steps = 100
	dt := ts / float64(steps-1)
	sum := mat.NewDense(nx, nx, nil)
	for i := 0; i < steps; i++ {
		aux.Scale(dt*float64(i), c.A)
		aux.Exp(aux)
		aux.Scale(dt, aux)
		sum.Add(sum, aux)
	}
	dsys.B.Mul(sum, c.B)

	return &Discrete{System: dsys}, nil
}

// Propagate integrates the system over one timestep dt from state x under
// input u using Euler's method, with the process noise vector wd added
// when it matches the state dimension. It returns error if x or u have
// invalid dimensions.
func (c *Continuous) Propagate(x, u, wd mat.Vector, dt float64) (mat.Vector, error) {
	nx, nu, _ := c.Dims()
	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	out := new(mat.Dense)
	out.Mul(c.A, x)

	if u != nil && c.B != nil {
		outU := new(mat.Dense)
		outU.Mul(c.B, u)
		out.Add(out, outU)
	}

	if wd != nil && wd.Len() == nx {
		out.Add(out, wd)
	}

	out.Scale(dt, out)
	out.Add(x, out)

	return out.ColView(0), nil
}
