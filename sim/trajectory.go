package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/statekit/kalman/noise"
)

// Trajectory holds the result of a simulated run. States stores one truth
// state per row; Outputs stores the corresponding (possibly noisy) system
// output per row.
type Trajectory struct {
	States  *mat.Dense
	Outputs *mat.Dense
}

// Run simulates steps cycles of the model from the initial condition init
// under the constant input u, perturbing states with the process noise wd
// and outputs with the measurement noise wn. Either noise source may be
// nil. It returns error if the model fails to propagate or observe a step.
func Run(model *Discrete, init *InitCond, u mat.Vector, steps int, wd, wn noise.Source) (*Trajectory, error) {
	if model == nil {
		return nil, fmt.Errorf("invalid model")
	}

	if init == nil {
		return nil, fmt.Errorf("invalid initial condition")
	}

	if steps <= 0 {
		return nil, fmt.Errorf("invalid number of steps: %d", steps)
	}

	nx, _, ny := model.Dims()
	tr := &Trajectory{
		States:  mat.NewDense(steps, nx, nil),
		Outputs: mat.NewDense(steps, ny, nil),
	}

	x := mat.VecDenseCopyOf(init.State())
	for i := 0; i < steps; i++ {
		var wdSample, wnSample mat.Vector
		if wd != nil {
			wdSample = wd.Sample()
		}
		if wn != nil {
			wnSample = wn.Sample()
		}

		next, err := model.Propagate(x, u, wdSample)
		if err != nil {
			return nil, fmt.Errorf("failed to propagate step %d: %v", i, err)
		}
		x.CopyVec(next)

		y, err := model.Observe(x, u, wnSample)
		if err != nil {
			return nil, fmt.Errorf("failed to observe step %d: %v", i, err)
		}

		for j := 0; j < nx; j++ {
			tr.States.Set(i, j, x.AtVec(j))
		}
		for j := 0; j < ny; j++ {
			tr.Outputs.Set(i, j, y.AtVec(j))
		}
	}

	return tr, nil
}
