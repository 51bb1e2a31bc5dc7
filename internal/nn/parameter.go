package nn

import "gonum.org/v1/gonum/mat"

// Parameter is a trainable weight matrix with its accumulated gradient.
//
// Biases are stored as (n, 1) matrices so the optimizer can treat every
// parameter uniformly. Gradients are accumulated in place by the
// backward pass and cleared by the optimizer between steps.
type Parameter struct {
	name  string
	value *mat.Dense
	grad  *mat.Dense
}

// NewParameter wraps an initialized value matrix as a trainable
// parameter. The gradient starts out zero with matching dimensions.
func NewParameter(name string, value *mat.Dense) *Parameter {
	r, c := value.Dims()
	return &Parameter{
		name:  name,
		value: value,
		grad:  mat.NewDense(r, c, nil),
	}
}

// Name returns the parameter's stable identifier, e.g. "lstm0.wix".
// Checkpoints key tensors by it.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter matrix. Mutated in place by the
// optimizer; read-only everywhere else.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Grad returns the accumulated gradient matrix.
func (p *Parameter) Grad() *mat.Dense {
	return p.grad
}

// ZeroGrad clears the accumulated gradient, keeping the allocation.
func (p *Parameter) ZeroGrad() {
	p.grad.Zero()
}

// ScaleGrad multiplies the accumulated gradient by s. The trainer uses
// it to average gradients over a mini-batch before the optimizer step.
func (p *Parameter) ScaleGrad(s float64) {
	p.grad.Scale(s, p.grad)
}
