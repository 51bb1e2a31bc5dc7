// Package encode converts words into one-hot training tensors.
//
// For supervised next-character prediction every word becomes a pair of
// (L, V) one-hot planes: X holds the characters themselves, Y holds the
// same characters shifted one timestep left (the prediction target).
package encode

import (
	"fmt"

	"github.com/4OH4/startup-name-generator/internal/tensor"
	"github.com/4OH4/startup-name-generator/internal/vocab"
)

// MaxWordLen is the fixed sequence length L. Words are truncated to it
// when encoded; shorter words leave trailing all-zero timesteps.
const MaxWordLen = 12

// Dataset is the encoded training set.
//
// X and Y both have shape (N, MaxWordLen, V). X[i, t, :] is the one-hot
// encoding of character t of word i. Y[i, t, :] is the one-hot encoding
// of character t+1 (the next-character target); the final valid
// timestep and all padding timesteps stay all-zero.
type Dataset struct {
	X, Y  *tensor.Tensor
	Words int
}

// Encode builds the dataset for a word list under the given vocabulary.
//
// Characters not present in the vocabulary are an error: the vocabulary
// is built from the same corpus, so an unknown rune means the caller
// mixed corpora.
func Encode(words []string, v *vocab.Vocabulary) (*Dataset, error) {
	n := len(words)
	if n == 0 {
		return nil, vocab.ErrEmptyCorpus
	}

	x := tensor.Zeros(n, MaxWordLen, v.Size())
	y := tensor.Zeros(n, MaxWordLen, v.Size())

	for i, word := range words {
		runes := []rune(word)
		for t := 0; t < len(runes) && t < MaxWordLen; t++ {
			ix, ok := v.Index(runes[t])
			if !ok {
				return nil, fmt.Errorf("encode: word %d contains %q, not in vocabulary", i, runes[t])
			}
			x.Set(1, i, t, ix)
			if t > 0 {
				// The character at t is the target for t-1.
				y.Set(1, i, t-1, ix)
			}
		}
	}

	return &Dataset{X: x, Y: y, Words: n}, nil
}

// TargetIndex decodes a one-hot target row to its class index.
//
// Returns -1 for an all-zero row (padding or the final timestep, which
// has no next character to predict).
func TargetIndex(row []float64) int {
	for i, v := range row {
		if v != 0 {
			return i
		}
	}
	return -1
}

// DecodeRow maps a one-hot row back to its rune via the vocabulary.
//
// The second return is false for an all-zero row.
func DecodeRow(row []float64, v *vocab.Vocabulary) (rune, bool) {
	ix := TargetIndex(row)
	if ix < 0 {
		return 0, false
	}
	return v.Char(ix), true
}
