// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Gauntlet" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's round (creates or reuses session)
//   - POST /daily/guess       → submit a letter for today's round
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// The date and a salt deterministically fix the round's word length and
// difficulty; the engine still plays adversarially within them, so there is
// no single answer word to leak. Wins are persisted with the number of
// wrong guesses spent and the elapsed time.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evilwords/go-server/internal/daily"
	"github.com/evilwords/go-server/internal/hangman"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	budget   int                      // wrong-guess budget for daily rounds
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily round.
type dailySession struct {
	GameID     string
	UserID     string
	Date       string
	WordLength int
	Difficulty hangman.Difficulty
	Start      time.Time
	Finished   bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	budget := defaultWrongGuesses
	if v := getEnv("DAILY_GUESSES", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			budget = n
		}
	}
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		budget:   budget,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// paramsNow returns today's date key and the deterministic round parameters.
func (d *dailyServer) paramsNow() (date string, wordLen int, diff hangman.Difficulty) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	wordLen, diff = daily.Params(now, d.salt, d.srv.dict.Lengths())
	return date, wordLen, diff
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	WordLength int    `json:"wordLength"`
	Difficulty string `json:"difficulty"`
	Guesses    int    `json:"guesses"`
	Played     bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, wordLen, diff := d.paramsNow()

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, WordLength: wordLen, Difficulty: diff.String(), Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{
			GameID: sess.GameID, Date: date, WordLength: wordLen,
			Difficulty: diff.String(), Guesses: d.budget, Played: false,
		})
		return
	}
	d.mu.Unlock()

	g, err := hangman.NewGame(d.srv.dict, wordLen, d.budget, diff)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	sess := &dailySession{
		GameID:     g.ID,
		UserID:     uid,
		Date:       date,
		WordLength: wordLen,
		Difficulty: diff,
		Start:      time.Now(),
	}
	d.mu.Lock()
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: g.ID, Date: date, WordLength: wordLen,
		Difficulty: diff.String(), Guesses: d.budget, Played: false,
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// handleGuess applies a letter to today's daily round.
// - Ensures valid GameID and letter.
// - Rejects if no session or session finished.
// - Applies the guess through the engine; persists result to DB on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	p.Letter = strings.ToLower(strings.TrimSpace(p.Letter))
	if p.GameID == "" || len(p.Letter) != 1 {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _, _ := d.paramsNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.GameID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		http.Error(w, `{"error":"locked"}`, http.StatusConflict)
		return
	}

	g, err := d.srv.store.Get(r.Context(), p.GameID)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	families, err := g.ApplyGuess(rune(p.Letter[0]))
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
		return
	}
	_ = d.srv.store.Save(r.Context(), g)

	state := g.State()
	if state == hangman.StateWon || state == hangman.StateLost {
		d.mu.Lock()
		sess.Finished = true
		d.mu.Unlock()
	}

	// Only wins land on the leaderboard.
	if state == hangman.StateWon {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID:     uid,
			Date:       date,
			WordLength: sess.WordLength,
			Difficulty: sess.Difficulty.String(),
			WrongUsed:  d.budget - g.GuessesLeft(),
			ElapsedMs:  elapsed,
		})
	}

	_ = json.NewEncoder(w).Encode(viewOf(g, families))
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.paramsNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
