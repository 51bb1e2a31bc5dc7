// Package nn implements the character-level sequence model.
//
// Building blocks:
//   - Parameter: trainable matrix with accumulated gradient
//   - LSTMCell: one recurrent layer, stepped a timestep at a time
//   - Dense: the shared (time-distributed) projection to vocabulary logits
//   - CharLM: the stacked model with forward pass and truncated-free
//     backpropagation through time
//
// All math runs on gonum/mat; there is no autodiff tape. Each layer
// caches its forward activations per timestep and replays them exactly
// in the backward pass.
package nn

import "gonum.org/v1/gonum/mat"

// Module is the base interface for trainable components.
type Module interface {
	// Parameters returns every trainable parameter of the module,
	// including nested ones. Order is stable across calls.
	Parameters() []*Parameter
}

// Forecaster is the forward-pass contract the generator consumes.
//
// Given t one-hot input rows (t ≥ 1, each of vocabulary width), Forward
// returns t probability rows of the same width, each non-negative and
// summing to 1: row i is the model's distribution over the character
// following input i.
type Forecaster interface {
	Forward(inputs [][]float64) [][]float64
}

// xavier initializes an (out, in) matrix with the Glorot uniform
// distribution: U(-sqrt(6/(in+out)), +sqrt(6/(in+out))).
func xavier(out, in int, rnd func() float64) *mat.Dense {
	bound := glorotBound(in, out)
	w := mat.NewDense(out, in, nil)
	for i := 0; i < out; i++ {
		for j := 0; j < in; j++ {
			w.Set(i, j, (rnd()*2-1)*bound)
		}
	}
	return w
}
