package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/evilwords/go-server/internal/hangman"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Params returns the deterministic round parameters for a date using
// HMAC(salt, YYYY-MM-DD): the word length is drawn from the available
// lengths and the difficulty from the three levels. Everyone playing the
// same date with the same salt gets the same setup; the engine still plays
// adversarially within it.
func Params(date time.Time, salt string, lengths []int) (wordLen int, diff hangman.Difficulty) {
	if len(lengths) == 0 {
		return 0, hangman.Easy
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)

	// first 8 bytes pick the length, next 8 the difficulty
	n := binary.BigEndian.Uint64(sum[:8])
	wordLen = lengths[n%uint64(len(lengths))]
	m := binary.BigEndian.Uint64(sum[8:16])
	diff = hangman.Difficulty(m % 3)
	return wordLen, diff
}
