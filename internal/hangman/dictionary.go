// internal/hangman/dictionary.go
//
// Immutable word dictionary for the Evil Hangman engine.
// Responsibilities:
//   - De-duplicate the caller-supplied word list (normalization is the
//     caller's job; see internal/words).
//   - Index words by length for fast round seeding.
//   - Hand out defensive copies so callers can never mutate the index.
//
// Notes:
//   - The dictionary is the only data source a round ever draws from;
//     it is built once and queried only by length.
//   - Iteration order of WordsOfLength is the insertion order of the
//     source list, which keeps round seeding deterministic.

package hangman

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Dictionary is an immutable collection of candidate words, indexed by length.
type Dictionary struct {
	byLength map[int][]string
	size     int
}

// NewDictionary builds a dictionary from the given word list.
// Duplicates are dropped (first occurrence wins). Returns ErrInvalidArgument
// if the list contains no words.
func NewDictionary(words []string) (*Dictionary, error) {
	words = lo.Uniq(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: dictionary must contain at least one word", ErrInvalidArgument)
	}
	d := &Dictionary{byLength: make(map[int][]string)}
	for _, w := range words {
		d.byLength[len(w)] = append(d.byLength[len(w)], w)
		d.size++
	}
	return d, nil
}

// Size returns the total number of words in the dictionary.
func (d *Dictionary) Size() int { return d.size }

// CountWordsOfLength returns how many dictionary words have length n.
// Absent lengths count as zero.
func (d *Dictionary) CountWordsOfLength(n int) int {
	return len(d.byLength[n])
}

// WordsOfLength returns a copy of all dictionary words of length n,
// in insertion order. Absent lengths yield an empty slice.
func (d *Dictionary) WordsOfLength(n int) []string {
	return append([]string(nil), d.byLength[n]...)
}

// Lengths returns every word length present in the dictionary, ascending.
func (d *Dictionary) Lengths() []int {
	lengths := lo.Keys(d.byLength)
	sort.Ints(lengths)
	return lengths
}
