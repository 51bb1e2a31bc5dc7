package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/4OH4/startup-name-generator/internal/nn"
)

// RMSProp implements root-mean-square propagation.
//
// Keeps an exponential moving average of squared gradients per
// parameter and divides each update by its root:
//
//	cache = rho * cache + (1-rho) * grad²
//	param = param - lr * grad / (sqrt(cache) + eps)
//
// Defaults match the common convention (lr=0.001, rho=0.9, eps=1e-8).
type RMSProp struct {
	params []*nn.Parameter
	lr     float64
	rho    float64
	eps    float64
	cache  map[*nn.Parameter]*mat.Dense
}

// RMSPropConfig holds the optimizer's hyperparameters. Zero fields take
// the defaults.
type RMSPropConfig struct {
	LR  float64 // learning rate (default 0.001)
	Rho float64 // squared-gradient decay (default 0.9)
	Eps float64 // numerical stability term (default 1e-8)
}

// NewRMSProp creates an RMSProp optimizer over the given parameters.
func NewRMSProp(params []*nn.Parameter, config RMSPropConfig) *RMSProp {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Rho == 0 {
		config.Rho = 0.9
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSProp{
		params: params,
		lr:     config.LR,
		rho:    config.Rho,
		eps:    config.Eps,
		cache:  make(map[*nn.Parameter]*mat.Dense, len(params)),
	}
}

// Step applies one RMSProp update to every parameter in place.
// Parameters whose gradient is all-zero still decay their cache, which
// matches the standard formulation.
func (r *RMSProp) Step() {
	for _, p := range r.params {
		rows, cols := p.Value().Dims()
		c, ok := r.cache[p]
		if !ok {
			c = mat.NewDense(rows, cols, nil)
			r.cache[p] = c
		}

		value := p.Value().RawMatrix()
		grad := p.Grad().RawMatrix()
		cacheRaw := c.RawMatrix()
		for i := 0; i < rows; i++ {
			vRow := value.Data[i*value.Stride : i*value.Stride+cols]
			gRow := grad.Data[i*grad.Stride : i*grad.Stride+cols]
			cRow := cacheRaw.Data[i*cacheRaw.Stride : i*cacheRaw.Stride+cols]
			for j := 0; j < cols; j++ {
				g := gRow[j]
				cRow[j] = r.rho*cRow[j] + (1-r.rho)*g*g
				vRow[j] -= r.lr * g / (math.Sqrt(cRow[j]) + r.eps)
			}
		}
	}
}

// ZeroGrad clears every parameter's accumulated gradient.
func (r *RMSProp) ZeroGrad() {
	zeroGrads(r.params)
}

// LR returns the learning rate.
func (r *RMSProp) LR() float64 {
	return r.lr
}
