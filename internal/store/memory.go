// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// This is a lightweight holding area for in-progress hangman rounds,
// which are never persisted across process runs by design.
//
// Characteristics:
//   - Stores *hangman.Game sessions keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing game IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/evilwords/go-server/internal/hangman"
)

// Store defines the holding interface for live game sessions.
// Only finished-game history goes to the database; live rounds stay here.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, g *hangman.Game) error

	// Get retrieves a session by ID.
	// Returns an error if the session is not found.
	Get(ctx context.Context, id string) (*hangman.Game, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex             // guards games map
	games map[string]*hangman.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*hangman.Game)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, g *hangman.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*hangman.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, errors.New("not found")
}
