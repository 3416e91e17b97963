// internal/hangman/partition.go
//
// Partitioning of the live word set by candidate pattern.
// Responsibilities:
//   - Derive the pattern each live word would produce for a guessed letter.
//   - Group the live set into families, one per distinct resulting pattern.
//   - Rank families from most to least adversarial.
//
// All functions here are pure: they are re-run fresh on every guess against
// the current live set and pattern, and never memoized across guesses.

package hangman

import (
	"sort"
	"strings"
)

// Placeholder marks an unrevealed position in a pattern.
const Placeholder = '-'

// family is one partition group: the pattern a guess would produce and the
// live words that would produce it.
type family struct {
	pattern string
	words   []string
}

// derivePattern returns the pattern word would produce if guess were applied:
// guess is revealed at every position where word contains it, every other
// position keeps its character from the current pattern.
func derivePattern(word, pattern string, guess byte) string {
	b := []byte(pattern)
	for i := 0; i < len(word); i++ {
		if word[i] == guess {
			b[i] = guess
		}
	}
	return string(b)
}

// partitionLive groups the live words by the pattern each would produce for
// guess. The groups are disjoint and their union is exactly live; families
// appear in order of first occurrence, so the result is deterministic for a
// deterministic live set.
func partitionLive(live []string, pattern string, guess byte) []family {
	index := make(map[string]int, len(live))
	fams := make([]family, 0, 4)
	for _, w := range live {
		p := derivePattern(w, pattern, guess)
		if i, ok := index[p]; ok {
			fams[i].words = append(fams[i].words, w)
		} else {
			index[p] = len(fams)
			fams = append(fams, family{pattern: p, words: []string{w}})
		}
	}
	return fams
}

// placeholderCount returns the number of unrevealed positions in pattern.
func placeholderCount(pattern string) int {
	return strings.Count(pattern, string(rune(Placeholder)))
}

// moreAdversarial reports whether family a should rank ahead of family b.
// Three-level tie-break:
//  1. larger family first (keeps more words alive),
//  2. more placeholders first (reveals less information),
//  3. lexicographically smaller pattern first (deterministic order).
func moreAdversarial(a, b family) bool {
	if len(a.words) != len(b.words) {
		return len(a.words) > len(b.words)
	}
	if pa, pb := placeholderCount(a.pattern), placeholderCount(b.pattern); pa != pb {
		return pa > pb
	}
	return a.pattern < b.pattern
}

// rankFamilies sorts families in place, most adversarial first.
func rankFamilies(fams []family) {
	sort.Slice(fams, func(i, j int) bool { return moreAdversarial(fams[i], fams[j]) })
}
