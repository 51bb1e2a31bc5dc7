package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/4OH4/startup-name-generator/internal/nn"
)

func paramWithGrad(t *testing.T, value, grad []float64) *nn.Parameter {
	t.Helper()
	p := nn.NewParameter("test", mat.NewDense(1, len(value), value))
	require.Equal(t, len(value), len(grad))
	for j, g := range grad {
		p.Grad().Set(0, j, g)
	}
	return p
}

func TestRMSPropDefaults(t *testing.T) {
	r := NewRMSProp(nil, RMSPropConfig{})
	assert.Equal(t, 0.001, r.LR())
}

func TestRMSPropStepDirection(t *testing.T) {
	p := paramWithGrad(t, []float64{1.0, -1.0, 0.5}, []float64{2.0, -3.0, 0.0})
	r := NewRMSProp([]*nn.Parameter{p}, RMSPropConfig{})

	r.Step()

	// Positive gradient decreases the weight, negative increases it,
	// zero gradient leaves it untouched.
	assert.Less(t, p.Value().At(0, 0), 1.0)
	assert.Greater(t, p.Value().At(0, 1), -1.0)
	assert.Equal(t, 0.5, p.Value().At(0, 2))
}

func TestRMSPropFirstStepMagnitude(t *testing.T) {
	// On the first step cache = (1-rho)*g², so the update is
	// lr * g / (sqrt((1-rho)) * |g| + eps) ≈ lr / sqrt(1-rho),
	// independent of the gradient's magnitude.
	p := paramWithGrad(t, []float64{0}, []float64{5})
	r := NewRMSProp([]*nn.Parameter{p}, RMSPropConfig{LR: 0.001, Rho: 0.9})

	r.Step()

	want := -0.001 / math.Sqrt(0.1)
	assert.InDelta(t, want, p.Value().At(0, 0), 1e-6)
}

func TestRMSPropAdaptsToGradientScale(t *testing.T) {
	// A persistently large gradient accumulates a large cache, so its
	// effective step shrinks toward lr regardless of scale.
	big := paramWithGrad(t, []float64{0}, []float64{1000})
	small := paramWithGrad(t, []float64{0}, []float64{0.001})
	r := NewRMSProp([]*nn.Parameter{big, small}, RMSPropConfig{})

	for i := 0; i < 50; i++ {
		r.Step()
	}

	// Both move a comparable distance despite six orders of magnitude
	// between their gradients.
	ratio := big.Value().At(0, 0) / small.Value().At(0, 0)
	assert.InDelta(t, 1.0, ratio, 0.1)
}

func TestZeroGrad(t *testing.T) {
	p := paramWithGrad(t, []float64{1}, []float64{2})
	r := NewRMSProp([]*nn.Parameter{p}, RMSPropConfig{})

	r.ZeroGrad()

	assert.Equal(t, 0.0, p.Grad().At(0, 0))
}
