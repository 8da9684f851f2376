package scoring

import (
	"testing"

	"pitchday/repository"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.25, Order: 1},
		{Id: 2, Name: "Market", Weight: 0.25, Order: 2},
	}
	scores := repository.ScoreMap{
		"innovation": {Score: 8},
		"market":     {Score: 6},
	}

	assert.Equal(t, 3.5, CalculateTotal(scores, criteria))
}

func TestCalculateTotalUnmatchedKeysContributeNothing(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.5, Order: 1},
	}
	scores := repository.ScoreMap{
		"innovation": {Score: 4},
		"budget":     {Score: 5},
	}

	assert.Equal(t, 2.0, CalculateTotal(scores, criteria))
}

func TestCalculateTotalEmptyScores(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.5, Order: 1},
	}
	assert.Equal(t, 0.0, CalculateTotal(repository.ScoreMap{}, criteria))
}

func TestCalculateTotalRoundsToTwoDecimals(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.333, Order: 1},
	}
	scores := repository.ScoreMap{
		"innovation": {Score: 3},
	}

	// 3 * 0.333 = 0.999
	assert.Equal(t, 1.0, CalculateTotal(scores, criteria))
}

func TestCalculateTotalFuzzyKeys(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation & Creativity", Weight: 0.4, Order: 1},
		{Id: 2, Name: "Pitch Quality", Weight: 0.6, Order: 2},
	}
	scores := repository.ScoreMap{
		"innovation":    {Score: 5, Note: "strong concept"},
		"Pitch-Quality": {Score: 3},
	}

	assert.Equal(t, 3.8, CalculateTotal(scores, criteria))
}

func TestWeightedTotalReflectsCurrentWeights(t *testing.T) {
	scores := repository.ScoreMap{"innovation": {Score: 4}}

	before := CalculateTotal(scores, []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.25, Order: 1},
	})
	after := CalculateTotal(scores, []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.5, Order: 1},
	})

	assert.Equal(t, 1.0, before)
	assert.Equal(t, 2.0, after)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.5, Round2(3.499999999))
	assert.Equal(t, 1.0, Round2(0.999))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 2.67, Round2(2.665000001))
}
