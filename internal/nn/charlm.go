package nn

import (
	"fmt"
	"math"
	"math/rand"
)

// Fixed architecture of the name model.
const (
	// HiddenSize is the width of each recurrent layer.
	HiddenSize = 50
	// LayerCount is the number of stacked recurrent layers.
	LayerCount = 2
)

// Config describes a CharLM architecture.
//
// The zero value is not useful; start from DefaultConfig and override
// for tests that want a smaller model.
type Config struct {
	HiddenSize int
	Layers     int
	// Seed for weight initialization. Negative means a random seed.
	Seed int64
}

// DefaultConfig returns the fixed production architecture: two stacked
// LSTM layers of 50 units.
func DefaultConfig() Config {
	return Config{HiddenSize: HiddenSize, Layers: LayerCount, Seed: -1}
}

// CharLM is the character-level sequence model: stacked LSTM layers
// followed by a shared dense projection to vocabulary logits and a
// per-timestep softmax.
//
// The model is mutated in place during training (parameter updates) and
// read-only during generation.
type CharLM struct {
	vocabSize int
	cells     []*LSTMCell
	proj      *Dense
}

// NewCharLM constructs a model with freshly initialized parameters.
func NewCharLM(vocabSize int, cfg Config) *CharLM {
	if vocabSize < 2 {
		panic(fmt.Sprintf("nn: vocabulary size %d, need at least terminator plus one character", vocabSize))
	}
	seed := cfg.Seed
	if seed < 0 {
		seed = rand.Int63()
	}
	rnd := rand.New(rand.NewSource(seed))

	cells := make([]*LSTMCell, cfg.Layers)
	for d := range cells {
		in := vocabSize
		if d > 0 {
			in = cfg.HiddenSize
		}
		cells[d] = NewLSTMCell(fmt.Sprintf("lstm%d", d), in, cfg.HiddenSize, rnd)
	}

	return &CharLM{
		vocabSize: vocabSize,
		cells:     cells,
		proj:      NewDense("proj", cfg.HiddenSize, vocabSize, rnd),
	}
}

// VocabSize returns the width of the model's input and output rows.
func (m *CharLM) VocabSize() int {
	return m.vocabSize
}

// Layers returns the number of stacked recurrent layers.
func (m *CharLM) Layers() int {
	return len(m.cells)
}

// HiddenSize returns the recurrent layers' hidden width.
func (m *CharLM) HiddenSize() int {
	return m.cells[0].HiddenSize()
}

// Forward runs the model over a sequence of one-hot rows and returns
// one probability distribution per timestep: output t is the predicted
// distribution of the character following input t.
func (m *CharLM) Forward(inputs [][]float64) [][]float64 {
	probs, _, _ := m.forward(inputs)
	return probs
}

type seqState struct {
	steps []*lstmStep // one per layer
	hTop  []float64
}

func (m *CharLM) forward(inputs [][]float64) (probs [][]float64, states []*seqState, hTops [][]float64) {
	if len(inputs) == 0 {
		panic("nn: CharLM.Forward on empty sequence")
	}

	h := make([][]float64, len(m.cells))
	c := make([][]float64, len(m.cells))
	for d, cell := range m.cells {
		h[d] = make([]float64, cell.HiddenSize())
		c[d] = make([]float64, cell.HiddenSize())
	}

	probs = make([][]float64, len(inputs))
	states = make([]*seqState, len(inputs))
	hTops = make([][]float64, len(inputs))
	for t, x := range inputs {
		if len(x) != m.vocabSize {
			panic(fmt.Sprintf("nn: input row width %d, want vocabulary size %d", len(x), m.vocabSize))
		}
		state := &seqState{steps: make([]*lstmStep, len(m.cells))}
		in := x
		for d, cell := range m.cells {
			var cache *lstmStep
			in, c[d], cache = cell.Step(in, h[d], c[d])
			h[d] = in
			state.steps[d] = cache
		}
		state.hTop = in
		states[t] = state
		hTops[t] = in
		probs[t] = softmax(m.proj.Forward(in))
	}
	return probs, states, hTops
}

// Learn runs one word through the model and backpropagates through
// time, accumulating parameter gradients in place.
//
// targets[t] is the vocabulary index the model should predict at
// timestep t, or -1 where there is no supervision (the final valid
// timestep and zero-padded tail). Returns the summed cross-entropy loss
// over the supervised timesteps.
func (m *CharLM) Learn(inputs [][]float64, targets []int) float64 {
	if len(targets) != len(inputs) {
		panic(fmt.Sprintf("nn: %d targets for %d inputs", len(targets), len(inputs)))
	}

	probs, states, hTops := m.forward(inputs)

	// Projection backward per supervised timestep; dhTop stays nil
	// where the timestep carries no target.
	loss := 0.0
	dhTop := make([][]float64, len(inputs))
	for t, target := range targets {
		if target < 0 {
			continue
		}
		p := probs[t][target]
		loss -= math.Log(math.Max(p, 1e-12))

		dlogits := make([]float64, m.vocabSize)
		copy(dlogits, probs[t])
		dlogits[target] -= 1
		dhTop[t] = m.proj.Backward(hTops[t], dlogits)
	}

	// Backpropagation through time. dhNext/dcNext carry the recurrent
	// gradients from step t+1 per layer.
	top := len(m.cells) - 1
	dhNext := make([][]float64, len(m.cells))
	dcNext := make([][]float64, len(m.cells))
	for d, cell := range m.cells {
		dhNext[d] = make([]float64, cell.HiddenSize())
		dcNext[d] = make([]float64, cell.HiddenSize())
	}

	for t := len(inputs) - 1; t >= 0; t-- {
		var fromAbove []float64
		for d := top; d >= 0; d-- {
			dh := make([]float64, m.cells[d].HiddenSize())
			copy(dh, dhNext[d])
			if d == top {
				if dhTop[t] != nil {
					addInPlace(dh, dhTop[t])
				}
			} else {
				addInPlace(dh, fromAbove)
			}
			var dx []float64
			dx, dhNext[d], dcNext[d] = m.cells[d].StepBackward(states[t].steps[d], dh, dcNext[d])
			fromAbove = dx
		}
		// fromAbove is now the gradient w.r.t. the one-hot input,
		// which has no parameters to update.
	}

	return loss
}

// Parameters returns all trainable parameters, layer by layer then the
// projection. Order is stable, which the checkpoint format relies on.
func (m *CharLM) Parameters() []*Parameter {
	var params []*Parameter
	for _, cell := range m.cells {
		params = append(params, cell.Parameters()...)
	}
	params = append(params, m.proj.Parameters()...)
	return params
}
