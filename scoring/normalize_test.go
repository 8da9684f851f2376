package scoring

import (
	"testing"

	"pitchday/repository"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "innovation", NormalizeKey("Innovation"))
	assert.Equal(t, "innovation__creativity", NormalizeKey("Innovation & Creativity"))
	assert.Equal(t, "market_fit", NormalizeKey("Market-Fit"))
	assert.Equal(t, "go_to_market", NormalizeKey("Go To Market!"))
	assert.Equal(t, "team_2", NormalizeKey("TEAM 2"))
	assert.Equal(t, "", NormalizeKey("&&&"))
}

func testCriteria() []*repository.Criterion {
	return []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.25, Order: 1},
		{Id: 2, Name: "Market Potential", Weight: 0.25, Order: 2},
		{Id: 3, Name: "Team", Weight: 0.2, Order: 3},
		{Id: 4, Name: "Pitch Quality", Weight: 0.3, Order: 4},
	}
}

func TestMatcherExactKey(t *testing.T) {
	matcher := NewCriterionMatcher(testCriteria())

	criterion := matcher.Match("innovation")
	assert.NotNil(t, criterion)
	assert.Equal(t, 1, criterion.Id)
}

func TestMatcherFuzzyContainment(t *testing.T) {
	matcher := NewCriterionMatcher(testCriteria())

	// submitted key contains the criterion name
	criterion := matcher.Match("Innovation & Creativity")
	assert.NotNil(t, criterion)
	assert.Equal(t, 1, criterion.Id)

	// criterion name contains the submitted key
	criterion = matcher.Match("market")
	assert.NotNil(t, criterion)
	assert.Equal(t, 2, criterion.Id)

	criterion = matcher.Match("Pitch-Quality")
	assert.NotNil(t, criterion)
	assert.Equal(t, 4, criterion.Id)
}

func TestMatcherNoMatch(t *testing.T) {
	matcher := NewCriterionMatcher(testCriteria())
	assert.Nil(t, matcher.Match("budget"))
}

func TestMatcherFirstMatchWins(t *testing.T) {
	// "team" is contained in both names; iteration order (by order, then
	// name) decides the winner.
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Team Spirit", Weight: 0.5, Order: 2},
		{Id: 2, Name: "Team", Weight: 0.5, Order: 1},
	}
	matcher := NewCriterionMatcher(criteria)

	criterion := matcher.Match("team")
	assert.NotNil(t, criterion)
	assert.Equal(t, 2, criterion.Id)
}

func TestMatcherOrderTieBrokenByName(t *testing.T) {
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Teamwork", Weight: 0.5, Order: 1},
		{Id: 2, Name: "Team", Weight: 0.5, Order: 1},
	}
	matcher := NewCriterionMatcher(criteria)

	criterion := matcher.Match("team")
	assert.NotNil(t, criterion)
	assert.Equal(t, 2, criterion.Id)
}
