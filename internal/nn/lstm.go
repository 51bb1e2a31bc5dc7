package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// LSTMCell is a single long short-term memory layer, stepped one
// timestep at a time.
//
// Gate equations for input x, previous hidden state hPrev and previous
// cell state cPrev:
//
//	i = sigmoid(Wix*x + Wih*hPrev + bi)   input gate
//	f = sigmoid(Wfx*x + Wfh*hPrev + bf)   forget gate
//	o = sigmoid(Wox*x + Woh*hPrev + bo)   output gate
//	g = tanh(Wcx*x + Wch*hPrev + bc)      cell write
//	c = f.*cPrev + i.*g
//	h = o.*tanh(c)
type LSTMCell struct {
	inSize     int
	hiddenSize int

	wix, wih, bi *Parameter
	wfx, wfh, bf *Parameter
	wox, woh, bo *Parameter
	wcx, wch, bc *Parameter
}

// lstmStep caches one timestep's forward activations for the backward
// pass.
type lstmStep struct {
	x, hPrev, cPrev []float64
	i, f, o, g      []float64
	c, tanhC        []float64
}

// NewLSTMCell creates a cell with Xavier-initialized weights and zero
// biases. The name prefixes the cell's parameter names, e.g. "lstm0".
func NewLSTMCell(name string, inSize, hiddenSize int, rnd *rand.Rand) *LSTMCell {
	weight := func(suffix string, in int) *Parameter {
		return NewParameter(name+"."+suffix, xavier(hiddenSize, in, rnd.Float64))
	}
	bias := func(suffix string) *Parameter {
		return NewParameter(name+"."+suffix, mat.NewDense(hiddenSize, 1, nil))
	}
	return &LSTMCell{
		inSize:     inSize,
		hiddenSize: hiddenSize,
		wix:        weight("wix", inSize),
		wih:        weight("wih", hiddenSize),
		bi:         bias("bi"),
		wfx:        weight("wfx", inSize),
		wfh:        weight("wfh", hiddenSize),
		bf:         bias("bf"),
		wox:        weight("wox", inSize),
		woh:        weight("woh", hiddenSize),
		bo:         bias("bo"),
		wcx:        weight("wcx", inSize),
		wch:        weight("wch", hiddenSize),
		bc:         bias("bc"),
	}
}

// HiddenSize returns the cell's hidden width.
func (l *LSTMCell) HiddenSize() int {
	return l.hiddenSize
}

// Step advances the cell one timestep and returns the new hidden and
// cell states along with the cached activations needed for backprop.
func (l *LSTMCell) Step(x, hPrev, cPrev []float64) (h, c []float64, cache *lstmStep) {
	if len(x) != l.inSize {
		panic(fmt.Sprintf("nn: LSTMCell input width %d, want %d", len(x), l.inSize))
	}

	gate := func(wx, wh, b *Parameter) []float64 {
		z := matVec(wx.value, x)
		addInPlace(z, matVec(wh.value, hPrev), col(b.value))
		return z
	}

	i := gate(l.wix, l.wih, l.bi)
	sigmoidInPlace(i)
	f := gate(l.wfx, l.wfh, l.bf)
	sigmoidInPlace(f)
	o := gate(l.wox, l.woh, l.bo)
	sigmoidInPlace(o)
	g := gate(l.wcx, l.wch, l.bc)
	tanhInPlace(g)

	c = make([]float64, l.hiddenSize)
	tanhC := make([]float64, l.hiddenSize)
	h = make([]float64, l.hiddenSize)
	for k := 0; k < l.hiddenSize; k++ {
		c[k] = f[k]*cPrev[k] + i[k]*g[k]
	}
	copy(tanhC, c)
	tanhInPlace(tanhC)
	for k := 0; k < l.hiddenSize; k++ {
		h[k] = o[k] * tanhC[k]
	}

	cache = &lstmStep{
		x: x, hPrev: hPrev, cPrev: cPrev,
		i: i, f: f, o: o, g: g,
		c: c, tanhC: tanhC,
	}
	return h, c, cache
}

// StepBackward backpropagates one timestep.
//
// dh is the loss gradient w.r.t. this step's hidden state (downstream
// plus recurrent contributions already summed); dcNext is the gradient
// flowing back into the cell state from step t+1. Parameter gradients
// are accumulated in place; the returned gradients feed the layer below
// (dx) and step t-1 (dhPrev, dcPrev).
func (l *LSTMCell) StepBackward(cache *lstmStep, dh, dcNext []float64) (dx, dhPrev, dcPrev []float64) {
	n := l.hiddenSize

	// Through h = o.*tanh(c) and c = f.*cPrev + i.*g.
	dc := make([]float64, n)
	dzo := make([]float64, n)
	dzf := make([]float64, n)
	dzi := make([]float64, n)
	dzc := make([]float64, n)
	dcPrev = make([]float64, n)
	for k := 0; k < n; k++ {
		tc := cache.tanhC[k]
		dc[k] = dcNext[k] + dh[k]*cache.o[k]*(1-tc*tc)

		do := dh[k] * tc
		dzo[k] = do * cache.o[k] * (1 - cache.o[k])

		df := dc[k] * cache.cPrev[k]
		dzf[k] = df * cache.f[k] * (1 - cache.f[k])

		di := dc[k] * cache.g[k]
		dzi[k] = di * cache.i[k] * (1 - cache.i[k])

		dg := dc[k] * cache.i[k]
		dzc[k] = dg * (1 - cache.g[k]*cache.g[k])

		dcPrev[k] = dc[k] * cache.f[k]
	}

	dx = make([]float64, l.inSize)
	dhPrev = make([]float64, n)
	accumulate := func(dz []float64, wx, wh, b *Parameter) {
		addOuter(wx.grad, dz, cache.x)
		addOuter(wh.grad, dz, cache.hPrev)
		addCol(b.grad, dz)
		addMatTVec(dx, wx.value, dz)
		addMatTVec(dhPrev, wh.value, dz)
	}
	accumulate(dzi, l.wix, l.wih, l.bi)
	accumulate(dzf, l.wfx, l.wfh, l.bf)
	accumulate(dzo, l.wox, l.woh, l.bo)
	accumulate(dzc, l.wcx, l.wch, l.bc)

	return dx, dhPrev, dcPrev
}

// Parameters returns the cell's twelve trainable matrices.
func (l *LSTMCell) Parameters() []*Parameter {
	return []*Parameter{
		l.wix, l.wih, l.bi,
		l.wfx, l.wfh, l.bf,
		l.wox, l.woh, l.bo,
		l.wcx, l.wch, l.bc,
	}
}
