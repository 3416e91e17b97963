// internal/words/words.go
//
// Provides the word list for the hangman engine.
//
// Responsibilities:
//   - Load the dictionary from an environment-provided file or fall back
//     to the embedded default list in the assets package.
//   - Normalize entries: lowercase, alphabetic a-z only, length >= 2,
//     duplicates dropped.
//   - Supply utility functions: All (the normalized list) and Stats
//     (counts per word length).
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise use the embedded default list from assets/words.txt.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt
//
// Constraints:
//   • Initialization is run once (sync.Once).
//   • The engine receives the list in memory; nothing here is consulted
//     again once a round is running.

package words

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/evilwords/go-server/assets"
)

var (
	initOnce   sync.Once
	all        []string // normalized dictionary
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the resulting list is empty.
func Init() error {
	initOnce.Do(func() {
		var list []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			var err error
			list, err = assets.DefaultList()
			if err != nil {
				initialErr = err
				return
			}
		}

		all = normalize(list)
		if len(all) == 0 {
			initialErr = errors.New("words: word list is empty")
		}
	})
	return initialErr
}

// All returns a copy of the normalized dictionary.
func All() []string {
	return append([]string(nil), all...)
}

// Stats returns the total word count and a per-length breakdown.
func Stats() (total int, byLength map[int]int) {
	byLength = make(map[int]int)
	for _, w := range all {
		byLength[len(w)]++
	}
	return len(all), byLength
}

// readWordFile loads one word per line from a file. Normalization happens
// in the caller so embedded and file-based lists go through the same path.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize lowercases and trims entries, keeps only alphabetic words of
// length >= 2, and drops duplicates while preserving order.
func normalize(list []string) []string {
	cleaned := lo.FilterMap(list, func(raw string, _ int) (string, bool) {
		w := strings.TrimSpace(strings.ToLower(raw))
		return w, len(w) >= 2 && isAlpha(w)
	})
	return lo.Uniq(cleaned)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
