// Package vocab builds the character vocabulary for the name generator.
//
// The vocabulary is the sorted set of distinct runes appearing in the
// training corpus, including the end-of-word terminator. Because '\n'
// sorts below every printable character, the terminator always lands at
// index 0; this invariant is asserted at construction time and the rest
// of the system (encoding, sampling, generation) relies on it.
package vocab

import (
	"errors"
	"fmt"
	"sort"
)

// Terminator is the end-of-word sentinel rune.
//
// Every word handed to the vocabulary builder and the tensor encoder is
// expected to end with it; the generator treats sampling it as "stop".
const Terminator = '\n'

// TerminatorIndex is the vocabulary index of the terminator.
//
// It is 0 by construction (sorted charset containing '\n') and verified
// when the vocabulary is built.
const TerminatorIndex = 0

// ErrEmptyCorpus is returned when a vocabulary is requested for an empty
// word list.
var ErrEmptyCorpus = errors.New("vocab: empty word list")

// ErrDegenerate is returned when the corpus contains no characters
// besides the terminator. Such a vocabulary could only ever generate
// empty words.
var ErrDegenerate = errors.New("vocab: vocabulary contains only the terminator")

// Vocabulary maps between characters and dense indices.
//
// Built once from the full corpus before any tensor construction and
// immutable afterwards.
type Vocabulary struct {
	chars   []rune
	indexOf map[rune]int
}

// Build derives the vocabulary from a word list.
//
// Words missing the trailing terminator are treated as if it were
// appended, so the terminator is always part of the result. The rune set
// is sorted, making Build deterministic for a given corpus.
func Build(words []string) (*Vocabulary, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCorpus
	}

	seen := map[rune]bool{Terminator: true}
	for _, word := range words {
		for _, r := range word {
			seen[r] = true
		}
	}
	if len(seen) == 1 {
		return nil, ErrDegenerate
	}

	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	if chars[TerminatorIndex] != Terminator {
		// Only possible if the corpus contains runes below '\n'
		// (control characters the preprocessor should have removed).
		return nil, fmt.Errorf("vocab: terminator not at index 0, corpus contains %q", chars[0])
	}

	indexOf := make(map[rune]int, len(chars))
	for i, r := range chars {
		indexOf[r] = i
	}

	return &Vocabulary{chars: chars, indexOf: indexOf}, nil
}

// Size returns the number of characters in the vocabulary, terminator
// included.
func (v *Vocabulary) Size() int {
	return len(v.chars)
}

// Char returns the rune at the given vocabulary index.
//
// Panics if the index is out of range.
func (v *Vocabulary) Char(index int) rune {
	if index < 0 || index >= len(v.chars) {
		panic(fmt.Sprintf("vocab: index %d out of range [0, %d)", index, len(v.chars)))
	}
	return v.chars[index]
}

// Index returns the vocabulary index of a rune and whether it is known.
func (v *Vocabulary) Index(r rune) (int, bool) {
	i, ok := v.indexOf[r]
	return i, ok
}

// Chars returns a copy of the sorted character set.
func (v *Vocabulary) Chars() []rune {
	out := make([]rune, len(v.chars))
	copy(out, v.chars)
	return out
}

// String renders the vocabulary for diagnostics, e.g. verbose mode.
func (v *Vocabulary) String() string {
	return fmt.Sprintf("Vocabulary(%d chars, %q)", len(v.chars), string(v.chars))
}
