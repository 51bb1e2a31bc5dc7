package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	v, err := Build([]string{"cat\n", "car\n", "cap\n"})
	require.NoError(t, err)

	assert.Equal(t, 6, v.Size())
	assert.Equal(t, []rune{'\n', 'a', 'c', 'p', 'r', 't'}, v.Chars())
}

func TestTerminatorAlwaysIndexZero(t *testing.T) {
	v, err := Build([]string{"zebra\n", "aardvark\n"})
	require.NoError(t, err)

	assert.Equal(t, Terminator, v.Char(TerminatorIndex))
	ix, ok := v.Index(Terminator)
	require.True(t, ok)
	assert.Equal(t, TerminatorIndex, ix)
}

func TestBuildAddsMissingTerminator(t *testing.T) {
	// Words without a trailing terminator are treated as terminated.
	v, err := Build([]string{"cat"})
	require.NoError(t, err)

	assert.Equal(t, Terminator, v.Char(0))
	assert.Equal(t, 4, v.Size())
}

func TestBuildDeterministic(t *testing.T) {
	words := []string{"foo\n", "bar\n", "baz\n"}
	v1, err := Build(words)
	require.NoError(t, err)
	v2, err := Build(words)
	require.NoError(t, err)

	assert.Equal(t, v1.Chars(), v2.Chars())
}

func TestInverseMappings(t *testing.T) {
	v, err := Build([]string{"cat\n"})
	require.NoError(t, err)

	for i := 0; i < v.Size(); i++ {
		r := v.Char(i)
		back, ok := v.Index(r)
		require.True(t, ok, "rune %q missing from index", r)
		assert.Equal(t, i, back)
	}

	_, ok := v.Index('z')
	assert.False(t, ok)
}

func TestBuildEmptyCorpus(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestBuildDegenerateCorpus(t *testing.T) {
	_, err := Build([]string{"\n", "\n"})
	assert.ErrorIs(t, err, ErrDegenerate)
}
