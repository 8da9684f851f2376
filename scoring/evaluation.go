package scoring

import (
	"math"

	"pitchday/repository"
)

// Round2 rounds to two decimal places, the precision totals and averages
// are stored and compared at.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// WeightedTotal accumulates score × weight over every entry whose key
// resolves to a registered criterion. Unmatched entries contribute 0.
// Bounds on individual scores are enforced at submission intake, not here.
func (m *CriterionMatcher) WeightedTotal(scores repository.ScoreMap) float64 {
	total := 0.0
	for key, entry := range scores {
		if criterion := m.Match(key); criterion != nil {
			total += entry.Score * criterion.Weight
		}
	}
	return Round2(total)
}

// CalculateTotal computes the weighted total of one evaluation against the
// current criterion set.
func CalculateTotal(scores repository.ScoreMap, criteria []*repository.Criterion) float64 {
	return NewCriterionMatcher(criteria).WeightedTotal(scores)
}
