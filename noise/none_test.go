package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewNone(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNone()
	assert.NotNil(n)
	assert.NoError(err)
}

func TestNoneMeanCov(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNone()
	assert.NotNil(n)
	assert.NoError(err)

	assert.Empty(n.Mean())
	assert.Equal(0, n.Cov().(*mat.SymDense).SymmetricDim())
}

func TestNoneSample(t *testing.T) {
	assert := assert.New(t)

	n, err := NewNone()
	assert.NotNil(n)
	assert.NoError(err)

	sample := n.Sample()
	assert.Equal(0, sample.(*mat.VecDense).Len())
	assert.NoError(n.Reset())
}

func TestNoneString(t *testing.T) {
	assert := assert.New(t)

	str := `None{
Mean=[]
Cov=
}`

	n, err := NewNone()
	assert.NotNil(n)
	assert.NoError(err)
	assert.Equal(str, n.String())
}
