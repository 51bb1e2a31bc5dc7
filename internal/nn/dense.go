package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dense is the shared per-timestep projection from hidden state to
// vocabulary logits: logits = W*h + b.
//
// Applied independently at every timestep (time-distributed), so a
// single weight matrix serves the whole sequence.
type Dense struct {
	inSize  int
	outSize int
	weight  *Parameter // (out, in)
	bias    *Parameter // (out, 1)
}

// NewDense creates a projection with Xavier-initialized weights and
// zero bias.
func NewDense(name string, inSize, outSize int, rnd *rand.Rand) *Dense {
	return &Dense{
		inSize:  inSize,
		outSize: outSize,
		weight:  NewParameter(name+".weight", xavier(outSize, inSize, rnd.Float64)),
		bias:    NewParameter(name+".bias", mat.NewDense(outSize, 1, nil)),
	}
}

// Forward computes the logits for one timestep's hidden state.
func (d *Dense) Forward(h []float64) []float64 {
	if len(h) != d.inSize {
		panic(fmt.Sprintf("nn: Dense input width %d, want %d", len(h), d.inSize))
	}
	logits := matVec(d.weight.value, h)
	addInPlace(logits, col(d.bias.value))
	return logits
}

// Backward accumulates the projection's gradients for one timestep and
// returns the gradient w.r.t. the hidden state.
func (d *Dense) Backward(h, dlogits []float64) (dh []float64) {
	addOuter(d.weight.grad, dlogits, h)
	addCol(d.bias.grad, dlogits)
	dh = make([]float64, d.inSize)
	addMatTVec(dh, d.weight.value, dlogits)
	return dh
}

// Parameters returns the weight and bias.
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}
