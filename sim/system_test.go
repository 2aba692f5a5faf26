package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var (
	sysA = mat.NewDense(2, 2, []float64{1, 0.1, 0, 1})
	sysB = mat.NewDense(2, 1, []float64{0.005, 0.1})
	sysC = mat.NewDense(1, 2, []float64{1, 0})
	sysD = mat.NewDense(1, 1, []float64{0})
)

func TestNewDiscrete(t *testing.T) {
	assert := assert.New(t)

	d, err := NewDiscrete(sysA, sysB, sysC, sysD)
	assert.NotNil(d)
	assert.NoError(err)

	nx, nu, ny := d.Dims()
	assert.Equal(2, nx)
	assert.Equal(1, nu)
	assert.Equal(1, ny)

	d, err = NewDiscrete(nil, sysB, sysC, sysD)
	assert.Nil(d)
	assert.Error(err)
}

func TestDiscretePropagate(t *testing.T) {
	assert := assert.New(t)

	d, err := NewDiscrete(sysA, sysB, sysC, sysD)
	assert.NoError(err)

	x := mat.NewVecDense(2, []float64{1, 2})
	u := mat.NewVecDense(1, []float64{0.5})

	next, err := d.Propagate(x, u, nil)
	assert.NoError(err)
	// A*x + B*u = [1.2, 2] + [0.0025, 0.05]
	assert.InDelta(1.2025, next.AtVec(0), 1e-12)
	assert.InDelta(2.05, next.AtVec(1), 1e-12)

	// no input
	next, err = d.Propagate(x, nil, nil)
	assert.NoError(err)
	assert.InDelta(1.2, next.AtVec(0), 1e-12)

	// process noise matching the state dimension is added
	wd := mat.NewVecDense(2, []float64{0.1, -0.1})
	next, err = d.Propagate(x, nil, wd)
	assert.NoError(err)
	assert.InDelta(1.3, next.AtVec(0), 1e-12)
	assert.InDelta(1.9, next.AtVec(1), 1e-12)

	_, err = d.Propagate(mat.NewVecDense(3, nil), u, nil)
	assert.Error(err)

	_, err = d.Propagate(x, mat.NewVecDense(3, nil), nil)
	assert.Error(err)
}

func TestObserve(t *testing.T) {
	assert := assert.New(t)

	d, err := NewDiscrete(sysA, sysB, sysC, sysD)
	assert.NoError(err)

	x := mat.NewVecDense(2, []float64{1, 2})

	y, err := d.Observe(x, nil, nil)
	assert.NoError(err)
	assert.Equal(1, y.Len())
	assert.InDelta(1.0, y.AtVec(0), 1e-12)

	wn := mat.NewVecDense(1, []float64{-0.25})
	y, err = d.Observe(x, nil, wn)
	assert.NoError(err)
	assert.InDelta(0.75, y.AtVec(0), 1e-12)

	_, err = d.Observe(mat.NewVecDense(3, nil), nil, nil)
	assert.Error(err)
}

func TestNewContinuous(t *testing.T) {
	assert := assert.New(t)

	c, err := NewContinuous(sysA, sysB, sysC, sysD)
	assert.NotNil(c)
	assert.NoError(err)

	c, err = NewContinuous(nil, nil, nil, nil)
	assert.Nil(c)
	assert.Error(err)
}

func TestContinuousPropagate(t *testing.T) {
	assert := assert.New(t)

	// dx/dt = -x, x(0) = 1: one small Euler step
	a := mat.NewDense(1, 1, []float64{-1})
	c, err := NewContinuous(a, nil, nil, nil)
	assert.NoError(err)

	x := mat.NewVecDense(1, []float64{1})
	next, err := c.Propagate(x, nil, nil, 0.01)
	assert.NoError(err)
	assert.InDelta(0.99, next.AtVec(0), 1e-12)
}

func TestToDiscrete(t *testing.T) {
	assert := assert.New(t)

	// double integrator driven by acceleration
	a := mat.NewDense(2, 2, []float64{0, 1, 0, 0})
	b := mat.NewDense(2, 1, []float64{0, 1})
	c, err := NewContinuous(a, b, sysC, nil)
	assert.NoError(err)

	const ts = 0.1
	d, err := c.ToDiscrete(ts)
	assert.NotNil(d)
	assert.NoError(err)

	// Ad = [1 ts; 0 1], Bd = [ts²/2; ts]
	assert.InDelta(1, d.A.At(0, 0), 1e-9)
	assert.InDelta(ts, d.A.At(0, 1), 1e-9)
	assert.InDelta(0, d.A.At(1, 0), 1e-9)
	assert.InDelta(1, d.A.At(1, 1), 1e-9)
	assert.InDelta(ts*ts/2, d.B.At(0, 0), 5e-3)
	assert.InDelta(ts, d.B.At(1, 0), 5e-3)

	_, err = c.ToDiscrete(0)
	assert.Error(err)
}
