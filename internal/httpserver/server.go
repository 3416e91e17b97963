// internal/httpserver/server.go
//
// HTTP server wiring for the Evil Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess.
//   - Daily gauntlet endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints live in auth.go.
//
// Notes:
//   - Live rounds are held in the session store only; the database keeps
//     finished-game history and user stats, never in-progress round state.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/evilwords/go-server/internal/hangman"
	"github.com/evilwords/go-server/internal/store"
)

const defaultWrongGuesses = 6

// Server bundles router, in-memory session store, DB handle, and the shared
// dictionary every round draws from.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	dict  *hangman.Dictionary
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, dict *hangman.Dictionary) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, dict: dict}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/health","POST /game/new","POST /game/guess","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)

	// Daily gauntlet — OPTIONAL AUTH (guests can play; wins persisted)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: dictionary word counts per length
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		counts := lo.SliceToMap(s.dict.Lengths(), func(n int) (string, int) {
			return strconv.Itoa(n), s.dict.CountWordsOfLength(n)
		})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total":    s.dict.Size(),
			"byLength": counts,
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	WordLength int    `json:"wordLength"`
	Guesses    int    `json:"guesses"`    // wrong-guess budget; default 6
	Difficulty string `json:"difficulty"` // easy | medium | hard; default medium
}

// roundView is the client-facing snapshot of a round, shared by the game and
// daily endpoints.
type roundView struct {
	GameID      string         `json:"gameId,omitempty"`
	Pattern     string         `json:"pattern"`
	GuessesLeft int            `json:"guessesLeft"`
	LiveWords   int            `json:"liveWords"`
	Guessed     []string       `json:"guessed"`
	State       string         `json:"state"` // in_progress | won | lost
	Difficulty  string         `json:"difficulty"`
	Families    map[string]int `json:"families,omitempty"` // pattern → word count, last guess only
	SecretWord  string         `json:"secretWord,omitempty"`
}

// viewOf renders a session for the client. families may be nil.
func viewOf(g *hangman.Game, families map[string]int) roundView {
	v := roundView{
		GameID:      g.ID,
		Pattern:     g.CurrentPattern(),
		GuessesLeft: g.GuessesLeft(),
		LiveWords:   g.LiveWordCount(),
		Guessed: lo.Map(g.GuessedLetters(), func(r rune, _ int) string {
			return string(r)
		}),
		State:      g.State().String(),
		Difficulty: g.Difficulty().String(),
		Families:   families,
	}
	if g.State() == hangman.StateWon || g.State() == hangman.StateLost {
		if secret, err := g.SecretWord(); err == nil {
			v.SecretWord = secret
		}
	}
	return v
}

// handleNewGame creates a new in-memory session and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Guesses == 0 {
		req.Guesses = defaultWrongGuesses
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	diff, err := hangman.ParseDifficulty(strings.ToLower(req.Difficulty))
	if err != nil {
		http.Error(w, `{"error":"unknown difficulty"}`, http.StatusBadRequest)
		return
	}

	g, err := hangman.NewGame(s.dict, req.WordLength, req.Guesses, diff)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist owner row; the round itself stays in memory only.
	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO games (id, user_id, word_length, difficulty, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,?,0)`, g.ID, me.ID, req.WordLength, diff.String(), now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.Exec(`INSERT INTO games (id, anonymous_id, word_length, difficulty, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,?,0)`, g.ID, anon, req.WordLength, diff.String(), now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
	}

	_ = json.NewEncoder(w).Encode(viewOf(g, nil))
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies a letter guess to an in-memory session, persists
// progress, and (if finished) updates user stats in a best-effort
// transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.Letter = strings.ToLower(strings.TrimSpace(req.Letter))
	if len(req.Letter) != 1 {
		http.Error(w, `{"error":"guess must be a single letter"}`, http.StatusBadRequest)
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	families, err := g.ApplyGuess(rune(req.Letter[0]))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, hangman.ErrInvalidState) {
			// already guessed, or the round is over
			status = http.StatusConflict
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist counters/history (best effort, non-fatal if it fails)
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, _ := s.db.Begin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	state := g.State()
	if state == hangman.StateWon || state == hangman.StateLost {
		secret, _ := g.SecretWord()
		if _, err := tx.Exec(`UPDATE games SET status=?, secret_word=?, finished_at=? WHERE id=? AND `+ownerClause,
			state.String(), secret, time.Now().UTC().Format(time.RFC3339), g.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := s.bumpStats(tx, me.ID, state == hangman.StateWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()

	_ = json.NewEncoder(w).Encode(viewOf(g, families))
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
