// internal/hangman/session.go
//
// Session wrapper binding one engine round to a server-side game.
// The engine itself knows nothing about IDs or timestamps; this type exists
// so the store and HTTP layers have a handle to pass around.

package hangman

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Game is one playable session: an engine with a prepared round plus the
// identifiers the server layers need.
type Game struct {
	ID        string
	CreatedAt time.Time
	*Engine
}

// NewGame prepares a fresh round over the shared dictionary and wraps it in
// a session with a random ID. Fails with ErrInvalidArgument on an
// unsatisfiable word length or non-positive budget.
func NewGame(dict *Dictionary, wordLen, wrongGuessBudget int, diff Difficulty, opts ...Option) (*Game, error) {
	eng := FromDictionary(dict, opts...)
	if err := eng.PrepareRound(wordLen, wrongGuessBudget, diff); err != nil {
		return nil, err
	}
	return &Game{
		ID:        randomID(),
		CreatedAt: time.Now().UTC(),
		Engine:    eng,
	}, nil
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
