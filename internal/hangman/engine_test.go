package hangman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRand always returns v modulo n, so terminal secret picks are exact.
type stubRand struct{ v int }

func (s stubRand) Intn(n int) int { return s.v % n }

func newTestEngine(t *testing.T, words []string, opts ...Option) *Engine {
	t.Helper()
	eng, err := New(words, opts...)
	require.NoError(t, err)
	return eng
}

func TestWorkedExample(t *testing.T) {
	// The cat/car/can walkthrough: hard difficulty, budget 6.
	eng := newTestEngine(t, []string{"cat", "car", "can"})
	require.NoError(t, eng.PrepareRound(3, 6, Hard))

	assert.Equal(t, StateInProgress, eng.State())
	assert.Equal(t, "---", eng.CurrentPattern())
	assert.Equal(t, 3, eng.LiveWordCount())

	freq, err := eng.ApplyGuess('c')
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c--": 3}, freq)
	assert.Equal(t, "c--", eng.CurrentPattern())
	assert.Equal(t, 3, eng.LiveWordCount())
	assert.Equal(t, 6, eng.GuessesLeft(), "pattern changed, so not a wrong guess")

	freq, err = eng.ApplyGuess('a')
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ca-": 3}, freq)
	assert.Equal(t, "ca-", eng.CurrentPattern())
	assert.Equal(t, 6, eng.GuessesLeft())

	freq, err = eng.ApplyGuess('t')
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cat": 1, "ca-": 2}, freq)
	assert.Equal(t, "ca-", eng.CurrentPattern(), "hard keeps the larger family")
	assert.Equal(t, 2, eng.LiveWordCount())
	assert.Equal(t, 5, eng.GuessesLeft(), "pattern unchanged, so budget decrements")
}

func TestFullRoundToWin(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"})
	require.NoError(t, eng.PrepareRound(3, 6, Hard))

	for _, g := range []rune{'c', 'a', 't'} {
		_, err := eng.ApplyGuess(g)
		require.NoError(t, err)
	}

	// live = {car, can}, pattern "ca-". Guessing 'r' splits 1/1; the family
	// with more placeholders ("ca-") ranks first, so 'r' counts as wrong.
	_, err := eng.ApplyGuess('r')
	require.NoError(t, err)
	assert.Equal(t, "ca-", eng.CurrentPattern())
	assert.Equal(t, 4, eng.GuessesLeft())
	assert.Equal(t, 1, eng.LiveWordCount())

	_, err = eng.ApplyGuess('n')
	require.NoError(t, err)
	assert.Equal(t, StateWon, eng.State())
	assert.Equal(t, "can", eng.CurrentPattern())

	secret, err := eng.SecretWord()
	require.NoError(t, err)
	assert.Equal(t, "can", secret)
}

func TestMercyOnFirstGuess(t *testing.T) {
	// Two families on guess 0: "d--" {dog, dot} ranked first, "---" {cat}
	// second. Easy and medium must take the second-ranked family.
	for _, d := range []Difficulty{Easy, Medium} {
		eng := newTestEngine(t, []string{"cat", "dog", "dot"})
		require.NoError(t, eng.PrepareRound(3, 5, d))

		_, err := eng.ApplyGuess('d')
		require.NoError(t, err)
		assert.Equal(t, "---", eng.CurrentPattern(), "difficulty %s", d)
		assert.Equal(t, 1, eng.LiveWordCount())
		assert.Equal(t, 4, eng.GuessesLeft(), "second family left the pattern unchanged")
	}

	eng := newTestEngine(t, []string{"cat", "dog", "dot"})
	require.NoError(t, eng.PrepareRound(3, 5, Hard))
	_, err := eng.ApplyGuess('d')
	require.NoError(t, err)
	assert.Equal(t, "d--", eng.CurrentPattern())
	assert.Equal(t, 2, eng.LiveWordCount())
	assert.Equal(t, 5, eng.GuessesLeft())
}

func TestWrongGuessDecrementsBudget(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"})
	require.NoError(t, eng.PrepareRound(3, 2, Hard))

	_, err := eng.ApplyGuess('z')
	require.NoError(t, err)
	assert.Equal(t, "---", eng.CurrentPattern())
	assert.Equal(t, 1, eng.GuessesLeft())
	assert.Equal(t, 3, eng.LiveWordCount(), "a wrong guess keeps every word alive")
	assert.Equal(t, StateInProgress, eng.State())
}

func TestLostWhenBudgetExhausted(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"}, WithRand(stubRand{v: 0}))
	require.NoError(t, eng.PrepareRound(3, 1, Hard))

	_, err := eng.ApplyGuess('z')
	require.NoError(t, err)
	assert.Equal(t, StateLost, eng.State())
	assert.Equal(t, 0, eng.GuessesLeft())

	secret, err := eng.SecretWord()
	require.NoError(t, err)
	assert.Equal(t, "cat", secret, "stub rand picks the first live word")
}

func TestSecretPickFollowsRand(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"}, WithRand(stubRand{v: 2}))
	require.NoError(t, eng.PrepareRound(3, 1, Hard))

	_, err := eng.ApplyGuess('z')
	require.NoError(t, err)
	secret, err := eng.SecretWord()
	require.NoError(t, err)
	assert.Equal(t, "can", secret)
}

func TestCorrectFinalGuessWinsWithOneWrongLeft(t *testing.T) {
	// Budget down to 1, then a correct guess completes the pattern. The
	// budget never reaches 0 because it only decrements on wrong guesses,
	// so the round is won, not lost.
	eng := newTestEngine(t, []string{"cat"})
	require.NoError(t, eng.PrepareRound(3, 2, Hard))

	_, err := eng.ApplyGuess('z')
	require.NoError(t, err)
	require.Equal(t, 1, eng.GuessesLeft())

	for _, g := range []rune{'c', 'a', 't'} {
		_, err := eng.ApplyGuess(g)
		require.NoError(t, err)
	}
	assert.Equal(t, StateWon, eng.State())
	assert.Equal(t, 1, eng.GuessesLeft())
}

func TestMonotonicityInvariants(t *testing.T) {
	words := []string{
		"ally", "beta", "cool", "deal", "else", "flew",
		"good", "hope", "ibex", "ally", "stem", "tree",
	}
	eng := newTestEngine(t, words)
	require.NoError(t, eng.PrepareRound(4, 8, Medium))

	prevLive := eng.LiveWordCount()
	prevPattern := eng.CurrentPattern()

	for _, g := range []rune{'e', 'a', 'o', 's', 't'} {
		if eng.State() != StateInProgress {
			break
		}
		freq, err := eng.ApplyGuess(g)
		require.NoError(t, err)

		// Partition completeness: family sizes sum to the prior live count.
		sum := 0
		for _, n := range freq {
			sum += n
		}
		assert.Equal(t, prevLive, sum)

		// Live set shrinks or stays; revealed positions never re-hide.
		assert.LessOrEqual(t, eng.LiveWordCount(), prevLive)
		pattern := eng.CurrentPattern()
		for i := range prevPattern {
			if prevPattern[i] != Placeholder {
				assert.Equal(t, prevPattern[i], pattern[i], "revealed position %d must stay revealed", i)
			}
		}
		prevLive = eng.LiveWordCount()
		prevPattern = pattern
	}
}

func TestAlreadyGuessedIsInvalidState(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"})
	require.NoError(t, eng.PrepareRound(3, 6, Hard))

	_, err := eng.ApplyGuess('c')
	require.NoError(t, err)
	_, err = eng.ApplyGuess('c')
	assert.ErrorIs(t, err, ErrInvalidState)

	// Case-insensitive: 'C' is the same guess.
	_, err = eng.ApplyGuess('C')
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGuessBeforePrepareIsInvalidState(t *testing.T) {
	eng := newTestEngine(t, []string{"cat"})
	_, err := eng.ApplyGuess('c')
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestNonLetterGuessIsInvalidArgument(t *testing.T) {
	eng := newTestEngine(t, []string{"cat"})
	require.NoError(t, eng.PrepareRound(3, 6, Hard))
	_, err := eng.ApplyGuess('1')
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPrepareRoundValidation(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car"})

	err := eng.PrepareRound(9, 6, Hard)
	assert.ErrorIs(t, err, ErrInvalidArgument, "no words of length 9")

	err = eng.PrepareRound(3, 0, Hard)
	assert.ErrorIs(t, err, ErrInvalidArgument, "budget must be at least 1")
}

func TestNewRejectsEmptyDictionary(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New([]string{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGuessedLettersSortedAndDeduped(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can"})
	require.NoError(t, eng.PrepareRound(3, 9, Hard))

	for _, g := range []rune{'z', 'b', 'a'} {
		_, err := eng.ApplyGuess(g)
		require.NoError(t, err)
	}
	assert.Equal(t, []rune{'a', 'b', 'z'}, eng.GuessedLetters())

	assert.True(t, eng.IsAlreadyGuessed('a'))
	assert.True(t, eng.IsAlreadyGuessed('A'))
	assert.False(t, eng.IsAlreadyGuessed('q'))
}

func TestSecretWordLifecycle(t *testing.T) {
	eng := newTestEngine(t, []string{"cat"})

	// No round prepared yet.
	_, err := eng.SecretWord()
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, eng.PrepareRound(3, 6, Hard))
	secret, err := eng.SecretWord()
	require.NoError(t, err)
	assert.Empty(t, secret, "secret is only assigned at termination")

	for _, g := range []rune{'c', 'a', 't'} {
		_, err := eng.ApplyGuess(g)
		require.NoError(t, err)
	}
	secret, err = eng.SecretWord()
	require.NoError(t, err)
	assert.Equal(t, "cat", secret)
}

func TestPrepareRoundDiscardsPriorState(t *testing.T) {
	eng := newTestEngine(t, []string{"cat", "car", "can", "bead"})
	require.NoError(t, eng.PrepareRound(3, 2, Hard))
	_, err := eng.ApplyGuess('z')
	require.NoError(t, err)

	require.NoError(t, eng.PrepareRound(4, 5, Easy))
	assert.Equal(t, "----", eng.CurrentPattern())
	assert.Equal(t, 1, eng.LiveWordCount())
	assert.Equal(t, 5, eng.GuessesLeft())
	assert.Empty(t, eng.GuessedLetters())
	assert.False(t, eng.IsAlreadyGuessed('z'))
}

func TestPatternString(t *testing.T) {
	eng := newTestEngine(t, []string{"banana"})
	require.NoError(t, eng.PrepareRound(6, 6, Hard))
	_, err := eng.ApplyGuess('a')
	require.NoError(t, err)
	assert.Equal(t, "-a-a-a", eng.CurrentPattern())
	assert.Equal(t, 3, strings.Count(eng.CurrentPattern(), "-"))
}
