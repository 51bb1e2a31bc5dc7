// Package tensor provides a minimal dense float64 tensor.
//
// The name generator only ever needs zero-initialized tensors of known
// shape with scalar reads/writes plus row views, so this stays
// deliberately small: a flat backing slice with row-major strides. The
// encoded training set (N, L, V) and the generator's rolling input
// buffer (L, V) are both built on it.
package tensor

import "fmt"

// Shape describes the dimensions of a tensor.
type Shape []int

// NumElements returns the total element count of the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if d != other[i] {
			return false
		}
	}
	return true
}

// String formats the shape like [2, 12, 27].
func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// Tensor is a dense row-major float64 tensor.
type Tensor struct {
	shape   Shape
	strides []int
	data    []float64
}

// Zeros creates a zero-filled tensor of the given shape.
func Zeros(shape ...int) *Tensor {
	s := Shape(shape)
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return &Tensor{
		shape:   s,
		strides: strides,
		data:    make([]float64, s.NumElements()),
	}
}

// Shape returns the tensor's shape. The caller must not modify it.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the flat row-major backing slice.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At reads the element at the given indices.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set writes the element at the given indices.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

// Row returns a view of the innermost row selected by the leading
// indices. For a (N, L, V) tensor, Row(i, t) is the length-V slice
// X[i, t, :]. The view aliases the tensor's storage.
func (t *Tensor) Row(leading ...int) []float64 {
	if len(leading) != len(t.shape)-1 {
		panic(fmt.Sprintf("tensor: Row wants %d indices, got %d", len(t.shape)-1, len(leading)))
	}
	off := 0
	for i, idx := range leading {
		t.check(i, idx)
		off += idx * t.strides[i]
	}
	last := t.shape[len(t.shape)-1]
	return t.data[off : off+last]
}

// Rows returns the sequence of innermost rows selected by the leading
// indices. For a (N, L, V) tensor, Rows(i) is the L×V sequence of word
// i; for a (L, V) tensor, Rows() is the full L×V sequence. All rows
// alias the tensor's storage.
func (t *Tensor) Rows(leading ...int) [][]float64 {
	if len(leading) != len(t.shape)-2 {
		panic(fmt.Sprintf("tensor: Rows wants %d indices, got %d", len(t.shape)-2, len(leading)))
	}
	off := 0
	for i, idx := range leading {
		t.check(i, idx)
		off += idx * t.strides[i]
	}
	n := t.shape[len(t.shape)-2]
	last := t.shape[len(t.shape)-1]
	rows := make([][]float64, n)
	for r := 0; r < n; r++ {
		start := off + r*last
		rows[r] = t.data[start : start+last]
	}
	return rows
}

// Zero resets every element to 0, keeping the allocation.
func (t *Tensor) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for shape %v", len(indices), t.shape))
	}
	off := 0
	for i, idx := range indices {
		t.check(i, idx)
		off += idx * t.strides[i]
	}
	return off
}

func (t *Tensor) check(dim, idx int) {
	if idx < 0 || idx >= t.shape[dim] {
		panic(fmt.Sprintf("tensor: index %d out of range for dim %d of shape %v", idx, dim, t.shape))
	}
}
