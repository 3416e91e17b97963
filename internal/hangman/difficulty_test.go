package hangman

import (
	"testing"

	"github.com/matryer/is"
)

func rankedPair() []family {
	return []family{
		{pattern: "---", words: []string{"dog", "dot"}},
		{pattern: "c--", words: []string{"cat"}},
	}
}

func TestHardAlwaysPicksTop(t *testing.T) {
	is := is.New(t)
	for prior := 0; prior < 9; prior++ {
		chosen := Hard.pick(rankedPair(), prior)
		is.Equal(chosen.pattern, "---") // hard never grants mercy
	}
}

func TestMediumThrottleEveryFourth(t *testing.T) {
	is := is.New(t)
	for prior := 0; prior < 9; prior++ {
		chosen := Medium.pick(rankedPair(), prior)
		if prior%4 == 0 {
			is.Equal(chosen.pattern, "c--") // mercy at counts 0, 4, 8
		} else {
			is.Equal(chosen.pattern, "---")
		}
	}
}

func TestEasyThrottleEverySecond(t *testing.T) {
	is := is.New(t)
	for prior := 0; prior < 9; prior++ {
		chosen := Easy.pick(rankedPair(), prior)
		if prior%2 == 0 {
			is.Equal(chosen.pattern, "c--")
		} else {
			is.Equal(chosen.pattern, "---")
		}
	}
}

func TestMercyRequiresSecondFamily(t *testing.T) {
	is := is.New(t)
	single := []family{{pattern: "---", words: []string{"dog"}}}
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		chosen := d.pick(single, 0)
		is.Equal(chosen.pattern, "---")
	}
}

func TestParseDifficulty(t *testing.T) {
	is := is.New(t)

	d, err := ParseDifficulty("easy")
	is.NoErr(err)
	is.Equal(d, Easy)

	d, err = ParseDifficulty("medium")
	is.NoErr(err)
	is.Equal(d, Medium)

	d, err = ParseDifficulty("hard")
	is.NoErr(err)
	is.Equal(d, Hard)

	_, err = ParseDifficulty("nightmare")
	is.True(err != nil)
}

func TestDifficultyString(t *testing.T) {
	is := is.New(t)
	is.Equal(Easy.String(), "easy")
	is.Equal(Medium.String(), "medium")
	is.Equal(Hard.String(), "hard")
}
