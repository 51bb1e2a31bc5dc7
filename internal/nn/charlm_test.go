package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneHot(width, index int) []float64 {
	row := make([]float64, width)
	if index >= 0 {
		row[index] = 1
	}
	return row
}

func tinyModel(vocabSize int) *CharLM {
	return NewCharLM(vocabSize, Config{HiddenSize: 5, Layers: 2, Seed: 42})
}

func TestForwardReturnsDistributions(t *testing.T) {
	const V = 6
	m := tinyModel(V)

	inputs := [][]float64{
		oneHot(V, -1), // empty first slot
		oneHot(V, 2),
		oneHot(V, 1),
		oneHot(V, 4),
	}
	out := m.Forward(inputs)
	require.Len(t, out, len(inputs))

	for s, dist := range out {
		require.Len(t, dist, V)
		sum := 0.0
		for _, p := range dist {
			assert.GreaterOrEqual(t, p, 0.0, "step %d", s)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "step %d", s)
	}
}

func TestForwardAnyPrefixLength(t *testing.T) {
	const V = 4
	m := tinyModel(V)

	for steps := 1; steps <= 12; steps++ {
		inputs := make([][]float64, steps)
		for s := range inputs {
			inputs[s] = oneHot(V, s%V)
		}
		out := m.Forward(inputs)
		assert.Len(t, out, steps)
	}
}

func TestForwardIsDeterministic(t *testing.T) {
	const V = 5
	m := tinyModel(V)
	inputs := [][]float64{oneHot(V, 1), oneHot(V, 3)}

	first := m.Forward(inputs)
	second := m.Forward(inputs)
	assert.Equal(t, first, second)
}

func TestSameSeedSameModel(t *testing.T) {
	a := NewCharLM(5, Config{HiddenSize: 4, Layers: 2, Seed: 7})
	b := NewCharLM(5, Config{HiddenSize: 4, Layers: 2, Seed: 7})

	inputs := [][]float64{oneHot(5, 2)}
	assert.Equal(t, a.Forward(inputs), b.Forward(inputs))
}

func TestParametersStableOrder(t *testing.T) {
	m := tinyModel(4)

	first := m.Parameters()
	second := m.Parameters()
	require.Equal(t, len(first), len(second))
	// 12 matrices per LSTM layer plus projection weight and bias.
	assert.Len(t, first, 2*12+2)
	for i := range first {
		assert.Same(t, first[i], second[i])
		assert.Equal(t, first[i].Name(), second[i].Name())
	}
}

func TestLearnReducesLossOnRepetition(t *testing.T) {
	// One supervised pattern hammered repeatedly must become more
	// likely under the model.
	const V = 4
	m := tinyModel(V)

	inputs := [][]float64{oneHot(V, 1), oneHot(V, 2), oneHot(V, 3)}
	targets := []int{2, 3, -1}

	first := m.Learn(inputs, targets)
	var last float64
	for i := 0; i < 200; i++ {
		for _, p := range m.Parameters() {
			grad := p.Grad()
			value := p.Value()
			rows, cols := value.Dims()
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					value.Set(r, c, value.At(r, c)-0.1*grad.At(r, c))
				}
			}
			p.ZeroGrad()
		}
		last = m.Learn(inputs, targets)
	}

	assert.Less(t, last, first)
}

func TestLearnMismatchedTargetsPanics(t *testing.T) {
	m := tinyModel(4)
	assert.Panics(t, func() {
		m.Learn([][]float64{oneHot(4, 1)}, []int{1, 2})
	})
}

func TestForwardEmptySequencePanics(t *testing.T) {
	m := tinyModel(4)
	assert.Panics(t, func() { m.Forward(nil) })
}

func TestForwardWrongWidthPanics(t *testing.T) {
	m := tinyModel(4)
	assert.Panics(t, func() { m.Forward([][]float64{oneHot(5, 1)}) })
}
