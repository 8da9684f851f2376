package scoring

import (
	"sort"
	"strings"
	"unicode"

	"pitchday/repository"
)

// NormalizeKey maps a free-form criterion key or name onto its canonical
// form: lowercase, spaces and dashes become underscores, "&" and any other
// non-alphanumeric characters are dropped. The same transform derives
// Criterion.Key from its name.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '-':
			b.WriteRune('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsEitherWay(a string, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// CriterionMatcher resolves free-form submission keys to registered
// criteria. Names are normalized once; Match scans in (order, name) order
// and the first containment match wins, so clients are not required to
// send canonical criterion keys.
type CriterionMatcher struct {
	criteria   []*repository.Criterion
	normalized []string
}

func NewCriterionMatcher(criteria []*repository.Criterion) *CriterionMatcher {
	sorted := make([]*repository.Criterion, len(criteria))
	copy(sorted, criteria)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Name < sorted[j].Name
	})
	normalized := make([]string, len(sorted))
	for i, criterion := range sorted {
		normalized[i] = NormalizeKey(criterion.Name)
	}
	return &CriterionMatcher{criteria: sorted, normalized: normalized}
}

// Match returns the best-matching criterion for a submitted key, or nil
// when nothing matches. Unmatched keys are not an error; they simply
// contribute nothing.
func (m *CriterionMatcher) Match(key string) *repository.Criterion {
	normalizedKey := NormalizeKey(key)
	for i, name := range m.normalized {
		if containsEitherWay(normalizedKey, name) {
			return m.criteria[i]
		}
	}
	return nil
}

// MatchesName reports whether a submitted key matches one specific
// criterion, using the same containment test as Match. The breakdown
// statistics use this to collect every matching entry per criterion.
func (m *CriterionMatcher) MatchesName(criterionName string, key string) bool {
	return containsEitherWay(NormalizeKey(key), NormalizeKey(criterionName))
}
