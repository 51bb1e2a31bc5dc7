// Package optim implements parameter optimization for training.
//
// The trainer accumulates gradients into the model's parameters, then
// hands them to an Optimizer for the in-place update. Only RMSProp is
// provided; it is the optimizer the name model trains with.
package optim

import "github.com/4OH4/startup-name-generator/internal/nn"

// Optimizer updates model parameters from their accumulated gradients.
type Optimizer interface {
	// Step applies one update to every parameter, in place.
	Step()

	// ZeroGrad clears all parameter gradients. Call before
	// accumulating the next mini-batch.
	ZeroGrad()
}

// zeroGrads is shared by optimizer implementations.
func zeroGrads(params []*nn.Parameter) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
