// internal/hangman/engine.go
//
// Core decision engine for a single Evil Hangman round.
// Responsibilities:
//   - Never commit to one secret word up front: keep the largest possible
//     set of candidate words alive and narrow it guess by guess.
//   - Per guess: partition the live set, rank the families, let the
//     difficulty policy choose, then update pattern/live set/budget.
//   - Track state transitions: preparing → in progress → won/lost.
//
// Notes:
//   - Round state is an immutable snapshot replaced wholesale on every
//     transition, which makes the monotonicity invariants easy to check.
//   - The only non-determinism is the terminal secret-word pick, isolated
//     behind the Rand interface so tests can inject a fixed source.

package hangman

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"lukechampine.com/frand"
)

// The two error kinds the engine produces. Both are unrecoverable
// precondition violations; callers are expected to check preconditions
// (IsAlreadyGuessed, LiveWordCount) before invoking the operation.
var (
	ErrInvalidArgument = fmt.Errorf("hangman: invalid argument")
	ErrInvalidState    = fmt.Errorf("hangman: invalid state")
)

// Rand supplies the random index for the terminal secret-word pick.
// *frand.RNG satisfies it; tests may supply a deterministic source.
type Rand interface {
	Intn(n int) int
}

// State is the lifecycle of a round.
type State int

const (
	StatePreparing State = iota
	StateInProgress
	StateWon
	StateLost
)

// String returns the snake_case name of the state.
func (s State) String() string {
	switch s {
	case StatePreparing:
		return "preparing"
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// round is one immutable snapshot of per-round state. ApplyGuess builds the
// next snapshot from the current one and swaps it in.
type round struct {
	wordLen     int
	pattern     string
	live        []string
	guessed     map[byte]struct{} // every letter guessed, right or wrong
	guessesLeft int
	difficulty  Difficulty
	secret      string // set exactly once, when the round terminates
	state       State
}

// clone copies the snapshot so the successor can be mutated freely.
func (r *round) clone() *round {
	next := *r
	next.guessed = make(map[byte]struct{}, len(r.guessed)+1)
	for g := range r.guessed {
		next.guessed[g] = struct{}{}
	}
	return &next
}

// Engine orchestrates rounds over a fixed dictionary. One engine owns one
// round at a time; preparing a new round discards the previous one.
// Engines are not safe for concurrent use.
type Engine struct {
	dict  *Dictionary
	rng   Rand
	round *round // nil until the first PrepareRound
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand overrides the random source used for the terminal secret pick.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New constructs an engine over the given word list.
// Returns ErrInvalidArgument if the list is empty.
func New(words []string, opts ...Option) (*Engine, error) {
	dict, err := NewDictionary(words)
	if err != nil {
		return nil, err
	}
	return FromDictionary(dict, opts...), nil
}

// FromDictionary constructs an engine sharing an already-built dictionary.
// Useful when many sessions play over the same word list.
func FromDictionary(dict *Dictionary, opts ...Option) *Engine {
	e := &Engine{dict: dict, rng: frand.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dictionary returns the engine's word source.
func (e *Engine) Dictionary() *Dictionary { return e.dict }

// CountWordsOfLength returns how many dictionary words have length n.
func (e *Engine) CountWordsOfLength(n int) int { return e.dict.CountWordsOfLength(n) }

// PrepareRound resets all round state: the live set is seeded with every
// dictionary word of the requested length and the pattern is all
// placeholders. Returns ErrInvalidArgument if no dictionary word has the
// requested length or the wrong-guess budget is below 1.
func (e *Engine) PrepareRound(wordLen, wrongGuessBudget int, diff Difficulty) error {
	if wrongGuessBudget < 1 {
		return fmt.Errorf("%w: wrong-guess budget must be at least 1, got %d", ErrInvalidArgument, wrongGuessBudget)
	}
	live := e.dict.WordsOfLength(wordLen)
	if len(live) == 0 {
		return fmt.Errorf("%w: dictionary has no words of length %d", ErrInvalidArgument, wordLen)
	}
	e.round = &round{
		wordLen:     wordLen,
		pattern:     strings.Repeat(string(rune(Placeholder)), wordLen),
		live:        live,
		guessed:     make(map[byte]struct{}),
		guessesLeft: wrongGuessBudget,
		difficulty:  diff,
		state:       StateInProgress,
	}
	return nil
}

// ApplyGuess runs one transition of the round for the guessed letter:
// partition the live set, rank the families, record the guess, let the
// difficulty policy choose the successor family, decrement the budget iff
// the pattern did not change, then check for termination.
//
// The returned map holds the size of every induced family keyed by its
// pattern, for observability; callers may ignore it.
//
// Returns ErrInvalidState if no round is in progress or the letter was
// already guessed this round, ErrInvalidArgument if the guess is not a
// letter a-z.
func (e *Engine) ApplyGuess(letter rune) (map[string]int, error) {
	r := e.round
	if r == nil || r.state != StateInProgress {
		return nil, fmt.Errorf("%w: no round in progress", ErrInvalidState)
	}
	letter = unicode.ToLower(letter)
	if letter < 'a' || letter > 'z' {
		return nil, fmt.Errorf("%w: guess must be a letter a-z", ErrInvalidArgument)
	}
	g := byte(letter)
	if _, ok := r.guessed[g]; ok {
		return nil, fmt.Errorf("%w: letter %q was already guessed", ErrInvalidState, string(letter))
	}

	fams := partitionLive(r.live, r.pattern, g)
	rankFamilies(fams)

	freq := make(map[string]int, len(fams))
	for _, f := range fams {
		freq[f.pattern] = len(f.words)
	}

	// The throttle is keyed off the guess count before this guess is
	// recorded; capture it, then record the letter on the successor.
	prior := len(r.guessed)
	next := r.clone()
	next.guessed[g] = struct{}{}

	chosen := r.difficulty.pick(fams, prior)
	if chosen.pattern == r.pattern {
		// The guess revealed nothing, so it was wrong.
		next.guessesLeft--
	}
	next.pattern = chosen.pattern
	next.live = append([]string(nil), chosen.words...)

	// Won must be checked before Lost: the budget only decrements on wrong
	// guesses, so a correct final guess that completes the pattern wins even
	// when only one wrong guess remained.
	switch {
	case placeholderCount(next.pattern) == 0:
		next.state = StateWon
		next.secret = next.live[e.rng.Intn(len(next.live))]
	case next.guessesLeft == 0:
		next.state = StateLost
		next.secret = next.live[e.rng.Intn(len(next.live))]
	}

	e.round = next
	return freq, nil
}

// State reports the round lifecycle state; StatePreparing before the first
// PrepareRound.
func (e *Engine) State() State {
	if e.round == nil {
		return StatePreparing
	}
	return e.round.state
}

// WordLength returns the current round's word length, 0 if no round.
func (e *Engine) WordLength() int {
	if e.round == nil {
		return 0
	}
	return e.round.wordLen
}

// Difficulty returns the current round's difficulty, Easy if no round.
func (e *Engine) Difficulty() Difficulty {
	if e.round == nil {
		return Easy
	}
	return e.round.difficulty
}

// LiveWordCount returns the number of words still consistent with the
// guesses so far, 0 if no round has been prepared.
func (e *Engine) LiveWordCount() int {
	if e.round == nil {
		return 0
	}
	return len(e.round.live)
}

// GuessesLeft returns the remaining wrong-guess budget, 0 if no round.
func (e *Engine) GuessesLeft() int {
	if e.round == nil {
		return 0
	}
	return e.round.guessesLeft
}

// CurrentPattern returns the revealed pattern, with '-' for unrevealed
// positions. Empty if no round has been prepared.
func (e *Engine) CurrentPattern() string {
	if e.round == nil {
		return ""
	}
	return e.round.pattern
}

// IsAlreadyGuessed reports whether letter was guessed this round.
func (e *Engine) IsAlreadyGuessed(letter rune) bool {
	if e.round == nil {
		return false
	}
	letter = unicode.ToLower(letter)
	if letter < 'a' || letter > 'z' {
		return false
	}
	_, ok := e.round.guessed[byte(letter)]
	return ok
}

// GuessedLetters returns every letter guessed this round, sorted and
// de-duplicated.
func (e *Engine) GuessedLetters() []rune {
	if e.round == nil {
		return nil
	}
	out := make([]rune, 0, len(e.round.guessed))
	for g := range e.round.guessed {
		out = append(out, rune(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SecretWord returns the word the engine finally committed to for this
// round. It is assigned exactly when the round terminates; before that the
// result is empty. Returns ErrInvalidState if the live set is empty, which
// the round invariants rule out.
func (e *Engine) SecretWord() (string, error) {
	if e.round == nil || len(e.round.live) == 0 {
		return "", fmt.Errorf("%w: no live words to pick a secret from", ErrInvalidState)
	}
	return e.round.secret, nil
}
