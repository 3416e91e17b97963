package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evilwords/go-server/internal/hangman"
)

func TestDateKey(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-02", DateKey(ts))
}

func TestParamsDeterministic(t *testing.T) {
	lengths := []int{3, 4, 5, 6}
	date := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	l1, d1 := Params(date, "salt", lengths)
	l2, d2 := Params(date, "salt", lengths)
	assert.Equal(t, l1, l2)
	assert.Equal(t, d1, d2)

	assert.Contains(t, lengths, l1)
	assert.Contains(t, []hangman.Difficulty{hangman.Easy, hangman.Medium, hangman.Hard}, d1)

	// Time of day must not matter, only the date.
	l3, d3 := Params(date.Add(9*time.Hour), "salt", lengths)
	assert.Equal(t, l1, l3)
	assert.Equal(t, d1, d3)
}

func TestParamsSaltChangesSelection(t *testing.T) {
	lengths := []int{3, 4, 5, 6, 7, 8}
	// Over a month of dates, two salts should disagree at least once.
	differs := false
	for day := 1; day <= 30; day++ {
		date := time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
		la, da := Params(date, "salt-a", lengths)
		lb, db := Params(date, "salt-b", lengths)
		if la != lb || da != db {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestParamsEmptyLengths(t *testing.T) {
	l, d := Params(time.Now(), "salt", nil)
	assert.Equal(t, 0, l)
	assert.Equal(t, hangman.Easy, d)
}
