// Package generate produces words from a trained sequence model.
//
// It implements temperature-controlled sampling over the model's
// per-timestep character distributions and the autoregressive loop that
// assembles complete words.
package generate

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Sampler draws character indices from probability distributions after
// reshaping them by a temperature.
//
// Temperature below 1 sharpens the distribution toward its mode
// (conservative sampling); above 1 flattens it toward uniform
// (exploratory sampling); exactly 1 leaves it unchanged.
type Sampler struct {
	temperature float64
	rng         *rand.Rand
}

// NewSampler creates a sampler. Temperature must be positive. A
// negative seed picks a random one.
func NewSampler(temperature float64, seed int64) (*Sampler, error) {
	if temperature <= 0 || math.IsNaN(temperature) {
		return nil, fmt.Errorf("generate: temperature must be > 0, got %v", temperature)
	}
	if seed < 0 {
		seed = rand.Int63()
	}
	return &Sampler{
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Temperature returns the sampler's temperature.
func (s *Sampler) Temperature() float64 {
	return s.temperature
}

// Rescale reshapes a probability distribution by the sampler's
// temperature: p -> exp(ln(p)/t), renormalized.
//
// Zero entries stay exactly zero (exp of -inf). If the reshaped mass
// underflows to nothing, the input distribution is returned
// renormalized instead; a fully degenerate all-zero input falls back to
// uniform. The result never contains NaN.
func (s *Sampler) Rescale(probs []float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		out[i] = math.Exp(math.Log(p) / s.temperature)
	}

	sum := floats.Sum(out)
	if sum > 0 && !math.IsNaN(sum) && !math.IsInf(sum, 0) {
		floats.Scale(1/sum, out)
		return out
	}

	// Reshaping destroyed the distribution (underflow at extreme
	// temperatures). Fall back to the input, renormalized.
	copy(out, probs)
	sum = floats.Sum(out)
	if sum <= 0 || math.IsNaN(sum) {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	floats.Scale(1/sum, out)
	return out
}

// Sample rescales a distribution by the temperature and draws one
// index from it.
func (s *Sampler) Sample(probs []float64) int {
	return s.Draw(s.Rescale(probs))
}

// Draw samples one index from an already-normalized distribution.
func (s *Sampler) Draw(probs []float64) int {
	r := s.rng.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if r < cum {
			return i
		}
	}
	// Rounding left a sliver of unassigned mass; take the last
	// non-zero entry.
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return len(probs) - 1
}
