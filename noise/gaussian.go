package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is multivariate normal noise.
type Gaussian struct {
	// dist is the underlying multivariate normal distribution
	dist *distmv.Normal
	// mean is the noise mean
	mean []float64
	// cov is the noise covariance
	cov mat.Symmetric
}

// NewGaussian creates new Gaussian noise with the given mean and
// covariance. It returns error if mean and covariance dimensions disagree
// or if covariance is not positive definite.
func NewGaussian(mean []float64, cov mat.Symmetric) (*Gaussian, error) {
	dist, ok := newNormal(mean, cov)
	if !ok {
		return nil, fmt.Errorf("failed to create Gaussian noise with mean %v", mean)
	}

	return &Gaussian{
		dist: dist,
		mean: mean,
		cov:  cov,
	}, nil
}

// Sample draws one noise vector.
func (g *Gaussian) Sample() mat.Vector {
	r := g.dist.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// Cov returns the noise covariance matrix.
func (g *Gaussian) Cov() mat.Symmetric {
	return g.cov
}

// Mean returns the noise mean.
func (g *Gaussian) Mean() []float64 {
	return g.mean
}

// Reset re-seeds the noise source.
// It returns error if it fails to recreate the underlying distribution.
func (g *Gaussian) Reset() error {
	dist, ok := newNormal(g.mean, g.cov)
	if !ok {
		return fmt.Errorf("failed to reset Gaussian noise")
	}
	g.dist = dist

	return nil
}

func newNormal(mean []float64, cov mat.Symmetric) (*distmv.Normal, bool) {
	if cov == nil || len(mean) == 0 || len(mean) != cov.SymmetricDim() {
		return nil, false
	}

	src := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	return distmv.NewNormal(mean, cov, src)
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{\nMean=%v\nCov=%v\n}", g.mean, mat.Formatted(g.cov, mat.Prefix("    "), mat.Squeeze()))
}
