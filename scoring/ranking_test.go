package scoring

import (
	"testing"

	"pitchday/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingFixture() ([]*repository.Team, []*repository.Criterion) {
	teams := []*repository.Team{
		{NumEquipe: "1", NomEquipe: "Alpha"},
		{NumEquipe: "2", NomEquipe: "Bravo"},
		{NumEquipe: "3", NomEquipe: "Charlie"},
		{NumEquipe: "4", NomEquipe: "Delta"},
		{NumEquipe: "5", NomEquipe: "Echo"},
	}
	criteria := []*repository.Criterion{
		{Id: 1, Name: "Innovation", Weight: 0.5, Order: 1},
		{Id: 2, Name: "Market", Weight: 0.5, Order: 2},
	}
	return teams, criteria
}

func TestRankTeamsCompetitionRanking(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{TeamNum: "1", JudgeId: 1, Total: 4.0},
		{TeamNum: "2", JudgeId: 1, Total: 4.0},
		{TeamNum: "3", JudgeId: 1, Total: 3.5},
		{TeamNum: "4", JudgeId: 1, Total: 3.5},
		{TeamNum: "5", JudgeId: 1, Total: 2.0},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 5)

	ranks := make([]int, len(rankings))
	for i, ranking := range rankings {
		ranks[i] = ranking.Rank
	}
	assert.Equal(t, []int{1, 1, 3, 3, 5}, ranks)
}

func TestRankTeamsTiesOrderedByTeamNumber(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{TeamNum: "4", JudgeId: 1, Total: 3.0},
		{TeamNum: "2", JudgeId: 1, Total: 3.0},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 2)
	assert.Equal(t, "2", rankings[0].NumEquipe)
	assert.Equal(t, "4", rankings[1].NumEquipe)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, 1, rankings[1].Rank)
}

func TestRankTeamsExcludesTeamsWithoutEvaluations(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{TeamNum: "1", JudgeId: 1, Total: 2.5},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 1)
	assert.Equal(t, "1", rankings[0].NumEquipe)
}

func TestRankTeamsAveragesAcrossJudges(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{TeamNum: "1", JudgeId: 1, Total: 4.0},
		{TeamNum: "1", JudgeId: 2, Total: 3.0},
		{TeamNum: "1", JudgeId: 3, Total: 3.5},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 1)
	assert.Equal(t, 3.5, rankings[0].AverageScore)
	assert.Equal(t, 3, rankings[0].EvaluationCount)
}

func TestRankTeamsJudgeFilter(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{TeamNum: "1", JudgeId: 1, Total: 4.0},
		{TeamNum: "1", JudgeId: 2, Total: 2.0},
		{TeamNum: "2", JudgeId: 2, Total: 3.0},
	}

	rankings := RankTeams(teams, evaluations, criteria, 2)
	require.Len(t, rankings, 2)
	assert.Equal(t, "2", rankings[0].NumEquipe)
	assert.Equal(t, 3.0, rankings[0].AverageScore)
	assert.Equal(t, "1", rankings[1].NumEquipe)
	assert.Equal(t, 2.0, rankings[1].AverageScore)
	assert.Equal(t, 1, rankings[1].EvaluationCount)
}

func TestRankTeamsCriterionBreakdown(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{
			TeamNum: "1", JudgeId: 1, Total: 3.5,
			Scores: repository.ScoreMap{
				"innovation": {Score: 4},
				"market":     {Score: 3},
			},
		},
		{
			TeamNum: "1", JudgeId: 2, Total: 3.0,
			Scores: repository.ScoreMap{
				"Innovation & Creativity": {Score: 2},
			},
		},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 1)

	breakdown := rankings[0].CriterionBreakdown
	require.Contains(t, breakdown, "Innovation")
	assert.Equal(t, 3.0, breakdown["Innovation"].Average)
	assert.Equal(t, 2, breakdown["Innovation"].Count)

	require.Contains(t, breakdown, "Market")
	assert.Equal(t, 3.0, breakdown["Market"].Average)
	assert.Equal(t, 1, breakdown["Market"].Count)
}

func TestRankTeamsBreakdownOmitsUnscoredCriteria(t *testing.T) {
	teams, criteria := rankingFixture()
	evaluations := []*repository.Evaluation{
		{
			TeamNum: "1", JudgeId: 1, Total: 2.0,
			Scores: repository.ScoreMap{"innovation": {Score: 4}},
		},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 1)
	assert.NotContains(t, rankings[0].CriterionBreakdown, "Market")
}

func TestRankTeamsRoundedAverageDecidesTies(t *testing.T) {
	teams, criteria := rankingFixture()
	// 3.333... and 3.33 round to the same displayed value and must share
	// a rank.
	evaluations := []*repository.Evaluation{
		{TeamNum: "1", JudgeId: 1, Total: 3.33},
		{TeamNum: "2", JudgeId: 1, Total: 3.33},
		{TeamNum: "2", JudgeId: 2, Total: 3.34},
		{TeamNum: "2", JudgeId: 3, Total: 3.33},
	}

	rankings := RankTeams(teams, evaluations, criteria, 0)
	require.Len(t, rankings, 2)
	assert.Equal(t, rankings[0].Rank, rankings[1].Rank)
}

func TestRankTeamsEmpty(t *testing.T) {
	teams, criteria := rankingFixture()
	rankings := RankTeams(teams, nil, criteria, 0)
	assert.Empty(t, rankings)
}
