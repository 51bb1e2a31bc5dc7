// Package train fits the sequence model to an encoded word corpus.
package train

import (
	"errors"
	"math/rand"

	"github.com/4OH4/startup-name-generator/internal/encode"
	"github.com/4OH4/startup-name-generator/internal/nn"
	"github.com/4OH4/startup-name-generator/internal/optim"
)

// Defaults used when the config leaves fields zero.
const (
	DefaultEpochs    = 500
	DefaultBatchSize = 64
)

// Config controls the training run.
type Config struct {
	Epochs    int
	BatchSize int
	// Seed for mini-batch shuffling. Negative means random.
	Seed int64

	// EpochEnd, if set, is invoked after every epoch with the epoch
	// index and the mean per-word loss. It is observational only and
	// must not mutate the model; the progress sampling in verbose
	// mode hangs off it.
	EpochEnd func(epoch int, loss float64)
}

// Trainer drives mini-batch training of a CharLM.
//
// The trainer borrows the model mutably for the duration of Fit; no
// other component may touch the model's parameters while Fit runs.
type Trainer struct {
	model *nn.CharLM
	opt   optim.Optimizer
	cfg   Config
}

// NewTrainer creates a trainer over a model and optimizer, filling in
// config defaults.
func NewTrainer(model *nn.CharLM, opt optim.Optimizer, cfg Config) *Trainer {
	if cfg.Epochs <= 0 {
		cfg.Epochs = DefaultEpochs
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Trainer{model: model, opt: opt, cfg: cfg}
}

// Fit trains the model on the encoded dataset for the configured number
// of epochs.
//
// Each epoch shuffles the word order, then for every mini-batch
// accumulates backpropagated gradients over the batch, averages them
// and applies one optimizer step.
func (t *Trainer) Fit(ds *encode.Dataset) error {
	if ds == nil || ds.Words == 0 {
		return errors.New("train: empty dataset")
	}
	xShape := ds.X.Shape()
	if xShape[2] != t.model.VocabSize() {
		return errors.New("train: dataset vocabulary width does not match the model")
	}

	seed := t.cfg.Seed
	if seed < 0 {
		seed = rand.Int63()
	}
	rnd := rand.New(rand.NewSource(seed))

	indices := make([]int, ds.Words)
	for i := range indices {
		indices[i] = i
	}

	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		rnd.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		epochLoss := 0.0
		for start := 0; start < len(indices); start += t.cfg.BatchSize {
			end := start + t.cfg.BatchSize
			if end > len(indices) {
				end = len(indices)
			}
			epochLoss += t.step(ds, indices[start:end])
		}

		if t.cfg.EpochEnd != nil {
			t.cfg.EpochEnd(epoch, epochLoss/float64(ds.Words))
		}
	}
	return nil
}

// step accumulates gradients over one mini-batch and applies a single
// optimizer update. Returns the batch's summed loss.
func (t *Trainer) step(ds *encode.Dataset, batch []int) float64 {
	t.opt.ZeroGrad()

	loss := 0.0
	steps := ds.X.Shape()[1]
	targets := make([]int, steps)
	for _, i := range batch {
		inputs := ds.X.Rows(i)
		for s := 0; s < steps; s++ {
			targets[s] = encode.TargetIndex(ds.Y.Row(i, s))
		}
		loss += t.model.Learn(inputs, targets)
	}

	// Average the accumulated gradients over the batch.
	scale := 1.0 / float64(len(batch))
	for _, p := range t.model.Parameters() {
		p.ScaleGrad(scale)
	}
	t.opt.Step()

	return loss
}
