package scoring

import (
	"math"
	"sort"

	"pitchday/repository"
)

type CriterionStats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type TeamRanking struct {
	NumEquipe          string                    `json:"num_equipe"`
	NomEquipe          string                    `json:"nom_equipe"`
	AverageScore       float64                   `json:"average_score"`
	EvaluationCount    int                       `json:"total_evaluations"`
	CriterionBreakdown map[string]CriterionStats `json:"criterion_breakdown"`
	Rank               int                       `json:"rank"`
}

// RankTeams derives the current ranking from evaluations and criteria. It
// owns no state and performs no writes; callers re-invoke it per query.
//
// Teams without evaluations are excluded entirely. The average is the mean
// of evaluation totals rounded to two decimals; the per-criterion breakdown
// is recomputed from the raw score maps with the same fuzzy matching used
// for totals. Ordering is average descending, team number ascending within
// a tie. Ranks are competition style: tied teams (on the rounded average)
// share a rank and the next distinct average skips past the tie group.
func RankTeams(teams []*repository.Team, evaluations []*repository.Evaluation, criteria []*repository.Criterion, judgeId int) []*TeamRanking {
	matcher := NewCriterionMatcher(criteria)

	byTeam := make(map[string][]*repository.Evaluation)
	for _, evaluation := range evaluations {
		if judgeId != 0 && evaluation.JudgeId != judgeId {
			continue
		}
		byTeam[evaluation.TeamNum] = append(byTeam[evaluation.TeamNum], evaluation)
	}

	rankings := make([]*TeamRanking, 0, len(teams))
	for _, team := range teams {
		teamEvals := byTeam[team.NumEquipe]
		if len(teamEvals) == 0 {
			continue
		}

		sum := 0.0
		for _, evaluation := range teamEvals {
			sum += evaluation.Total
		}

		rankings = append(rankings, &TeamRanking{
			NumEquipe:          team.NumEquipe,
			NomEquipe:          team.NomEquipe,
			AverageScore:       Round2(sum / float64(len(teamEvals))),
			EvaluationCount:    len(teamEvals),
			CriterionBreakdown: criterionBreakdown(matcher, criteria, teamEvals),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].AverageScore != rankings[j].AverageScore {
			return rankings[i].AverageScore > rankings[j].AverageScore
		}
		return rankings[i].NumEquipe < rankings[j].NumEquipe
	})

	assignRanks(rankings)
	return rankings
}

// criterionBreakdown collects, per criterion, every matching score across a
// team's evaluations. Criteria no evaluation scored are omitted.
func criterionBreakdown(matcher *CriterionMatcher, criteria []*repository.Criterion, evaluations []*repository.Evaluation) map[string]CriterionStats {
	breakdown := make(map[string]CriterionStats)
	for _, criterion := range criteria {
		sum := 0.0
		count := 0
		for _, evaluation := range evaluations {
			for key, entry := range evaluation.Scores {
				if matcher.MatchesName(criterion.Name, key) {
					sum += entry.Score
					count++
				}
			}
		}
		if count > 0 {
			breakdown[criterion.Name] = CriterionStats{
				Average: sum / float64(count),
				Count:   count,
			}
		}
	}
	return breakdown
}

// assignRanks applies competition ("1224") ranking over the sorted slice.
// Averages are already rounded to two decimals, so cent comparison is
// exact.
func assignRanks(rankings []*TeamRanking) {
	for i, ranking := range rankings {
		if i > 0 && cents(ranking.AverageScore) == cents(rankings[i-1].AverageScore) {
			ranking.Rank = rankings[i-1].Rank
		} else {
			ranking.Rank = i + 1
		}
	}
}

func cents(x float64) int64 {
	return int64(math.Round(x * 100))
}
