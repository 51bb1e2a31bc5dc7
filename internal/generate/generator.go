package generate

import (
	"log"
	"unicode"

	"github.com/4OH4/startup-name-generator/internal/encode"
	"github.com/4OH4/startup-name-generator/internal/nn"
	"github.com/4OH4/startup-name-generator/internal/tensor"
	"github.com/4OH4/startup-name-generator/internal/vocab"
)

// MinWordLength is the default minimum length of a generated word.
// Terminators sampled before it are rejected and redrawn.
const MinWordLength = 4

// maxRejections bounds both rejection loops. Past it the generator
// stops fighting the distribution and accepts what it sampled.
const maxRejections = 1000

// Generator drives a trained model autoregressively to produce words.
//
// The model is only read, never mutated, so one generator may produce
// any number of words from the same model instance.
type Generator struct {
	model   nn.Forecaster
	vocab   *vocab.Vocabulary
	sampler *Sampler

	// MinLength is the minimum word length enforced by rejection
	// sampling of early terminators. Defaults to MinWordLength.
	MinLength int

	// Verbose enables diagnostics when a rejection loop hits its
	// attempt cap.
	Verbose bool
}

// NewGenerator creates a generator over a trained (or loaded) model.
func NewGenerator(model nn.Forecaster, v *vocab.Vocabulary, sampler *Sampler) *Generator {
	return &Generator{
		model:     model,
		vocab:     v,
		sampler:   sampler,
		MinLength: MinWordLength,
	}
}

// Word samples one complete word from the model.
//
// The first character is drawn from the model's prediction over an
// empty sequence, never the terminator, and is uppercased. Subsequent
// characters are drawn from the prediction following the prefix built
// so far; a terminator sampled before MinLength characters is redrawn
// up to the attempt cap. The word ends on an accepted terminator or at
// the maximum encoded length.
func (g *Generator) Word() string {
	x := tensor.Zeros(encode.MaxWordLen, g.vocab.Size())
	rows := x.Rows()

	// First character: the prediction for an all-zero first timestep.
	first := g.sampler.Rescale(g.model.Forward(rows[:1])[0])
	ix := g.sampler.Draw(first)
	for attempt := 0; ix == vocab.TerminatorIndex; attempt++ {
		if attempt >= maxRejections {
			ix = argmaxNonTerminator(first)
			if g.Verbose {
				log.Printf("generate: first character kept sampling the terminator, taking the most likely character instead")
			}
			break
		}
		ix = g.sampler.Draw(first)
	}

	rows[0][ix] = 1
	word := []rune{unicode.ToUpper(g.vocab.Char(ix))}

	for i := 1; i < encode.MaxWordLen; i++ {
		// Prediction at the last fed timestep: the distribution of
		// the character following the prefix.
		out := g.model.Forward(rows[:i])
		next := g.sampler.Rescale(out[i-1])

		ix = g.sampler.Draw(next)
		if ix == vocab.TerminatorIndex && len(word) < g.minLength() {
			for attempt := 0; ix == vocab.TerminatorIndex; attempt++ {
				if attempt >= maxRejections {
					// Accept the terminator and return a short word
					// rather than spinning forever.
					if g.Verbose {
						log.Printf("generate: caught in a near-infinite loop; the temperature may be too low and the sampler keeps drawing terminators")
					}
					break
				}
				ix = g.sampler.Draw(next)
			}
		}

		rows[i][ix] = 1
		if ix == vocab.TerminatorIndex {
			break
		}
		word = append(word, g.vocab.Char(ix))
	}

	return string(word)
}

// Words samples n words. Every word is produced independently; a short
// fallback word never aborts the batch.
func (g *Generator) Words(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Word())
	}
	return out
}

func (g *Generator) minLength() int {
	if g.MinLength > 0 {
		return g.MinLength
	}
	return MinWordLength
}

func argmaxNonTerminator(probs []float64) int {
	best := 1
	for i := 2; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best
}
