package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4OH4/startup-name-generator/internal/vocab"
)

func buildVocab(t *testing.T, words []string) *vocab.Vocabulary {
	t.Helper()
	v, err := vocab.Build(words)
	require.NoError(t, err)
	return v
}

func TestEncodeShapes(t *testing.T) {
	words := []string{"cat\n", "car\n", "cap\n"}
	v := buildVocab(t, words)

	ds, err := Encode(words, v)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Words)
	assert.True(t, ds.X.Shape().Equal([]int{3, MaxWordLen, v.Size()}))
	assert.True(t, ds.Y.Shape().Equal([]int{3, MaxWordLen, v.Size()}))
}

func TestEncodeRoundTrip(t *testing.T) {
	words := []string{"cat\n", "ca\n"}
	v := buildVocab(t, words)

	ds, err := Encode(words, v)
	require.NoError(t, err)

	for i, word := range words {
		var decoded strings.Builder
		for s := 0; s < MaxWordLen; s++ {
			r, ok := DecodeRow(ds.X.Row(i, s), v)
			if !ok {
				break
			}
			decoded.WriteRune(r)
		}
		assert.Equal(t, word, decoded.String(), "word %d", i)
	}
}

func TestEncodeOneHotRows(t *testing.T) {
	words := []string{"cat\n"}
	v := buildVocab(t, words)

	ds, err := Encode(words, v)
	require.NoError(t, err)

	for s := 0; s < MaxWordLen; s++ {
		set := 0
		for _, val := range ds.X.Row(0, s) {
			if val != 0 {
				assert.Equal(t, 1.0, val)
				set++
			}
		}
		assert.LessOrEqual(t, set, 1, "timestep %d has multiple set bits", s)
	}
}

func TestTargetsAreInputsShiftedLeft(t *testing.T) {
	words := []string{"cat\n", "vector\n"}
	v := buildVocab(t, words)

	ds, err := Encode(words, v)
	require.NoError(t, err)

	for i := range words {
		for s := 0; s < MaxWordLen-1; s++ {
			next := TargetIndex(ds.X.Row(i, s+1))
			if next < 0 {
				continue
			}
			assert.Equal(t, next, TargetIndex(ds.Y.Row(i, s)), "word %d step %d", i, s)
		}
		// No target beyond the buffer.
		assert.Equal(t, -1, TargetIndex(ds.Y.Row(i, MaxWordLen-1)))
	}
}

func TestEncodeTruncatesLongWords(t *testing.T) {
	long := "abcdefghijklmnop\n" // 16 chars before the terminator
	v := buildVocab(t, []string{long})

	ds, err := Encode([]string{long}, v)
	require.NoError(t, err)

	// Exactly the first MaxWordLen characters are encoded.
	for s := 0; s < MaxWordLen; s++ {
		r, ok := DecodeRow(ds.X.Row(0, s), v)
		require.True(t, ok)
		assert.Equal(t, []rune(long)[s], r)
	}
}

func TestEncodePadsShortWords(t *testing.T) {
	words := []string{"ab\n"}
	v := buildVocab(t, words)

	ds, err := Encode(words, v)
	require.NoError(t, err)

	for s := 3; s < MaxWordLen; s++ {
		assert.Equal(t, -1, TargetIndex(ds.X.Row(0, s)), "X step %d should be padding", s)
		assert.Equal(t, -1, TargetIndex(ds.Y.Row(0, s)), "Y step %d should be padding", s)
	}
}

func TestEncodeUnknownRune(t *testing.T) {
	v := buildVocab(t, []string{"cat\n"})

	_, err := Encode([]string{"dog\n"}, v)
	assert.Error(t, err)
}

func TestEncodeEmpty(t *testing.T) {
	v := buildVocab(t, []string{"cat\n"})

	_, err := Encode(nil, v)
	assert.ErrorIs(t, err, vocab.ErrEmptyCorpus)
}
