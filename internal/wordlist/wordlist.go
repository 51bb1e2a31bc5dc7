// Package wordlist loads a text file and cleans it into the training
// corpus.
//
// The input does not have to be well formatted: a book chapter, a
// dictionary dump or a plain list of names all work. Cleaning is
// rudimentary on purpose: lowercase, strip everything that is not a
// letter, apostrophe or hyphen, drop fragments shorter than two
// characters and terminate every surviving word with the end-of-word
// marker.
package wordlist

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/4OH4/startup-name-generator/internal/vocab"
)

// minFragmentLen drops single-character debris left over from
// punctuation stripping.
const minFragmentLen = 2

// Load reads a word-list file and returns the cleaned corpus. Every
// returned word ends with the terminator rune.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	words := Clean(string(data))
	if len(words) == 0 {
		return nil, fmt.Errorf("wordlist: no usable words in %s", path)
	}
	return words, nil
}

// Clean turns arbitrary text into terminator-suffixed lowercase words.
func Clean(text string) []string {
	lowered := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return unicode.ToLower(r)
		case r == '\'' || r == '-':
			return r
		default:
			return ' '
		}
	}, text)

	var words []string
	for _, field := range strings.Fields(lowered) {
		trimmed := strings.Trim(field, "'-")
		if len([]rune(trimmed)) < minFragmentLen {
			continue
		}
		words = append(words, trimmed+string(vocab.Terminator))
	}
	return words
}
