// internal/hangman/difficulty.go
//
// Difficulty levels and the partition-selection policy.
// Defines:
//   - Difficulty: Easy/Medium/Hard, immutable for a round's lifetime.
//   - pick: the mercy throttle that occasionally selects the second-most
//     adversarial family instead of the hardest one.

package hangman

import "fmt"

// Difficulty controls how often the engine deviates from the purely
// adversarial partition choice.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the lowercase name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a lowercase difficulty name to its value.
// Returns ErrInvalidArgument for unknown names.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, s)
}

// pick selects the family the round continues with. priorGuesses is the
// number of guesses made before the current one; keying the throttle off
// the pre-increment count means the very first guess (count 0) already
// qualifies for mercy on Easy and Medium.
//
// Hard always takes the most adversarial family. Medium takes the
// second-ranked family on every 4th guess (counts 0, 4, 8, ...), Easy on
// every 2nd (even counts), whenever a second family exists.
func (d Difficulty) pick(ranked []family, priorGuesses int) family {
	if len(ranked) > 1 {
		switch d {
		case Easy:
			if priorGuesses%2 == 0 {
				return ranked[1]
			}
		case Medium:
			if priorGuesses%4 == 0 {
				return ranked[1]
			}
		}
	}
	return ranked[0]
}
