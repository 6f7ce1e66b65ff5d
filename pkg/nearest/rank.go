package nearest

import "sort"

// Rank sorts expressions by cost ascending, breaking ties by occurrence
// count descending, then truncates to maxResults. A cost tie prefers the
// pattern seen more often in training: it is more likely to be the
// "correct" nearby shape.
func Rank(expressions []Expression, maxResults int) []Expression {
	ranked := make([]Expression, len(expressions))
	copy(ranked, expressions)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Cost == ranked[j].Cost {
			return ranked[i].Occurrences > ranked[j].Occurrences
		}
		return ranked[i].Cost < ranked[j].Cost
	})

	if maxResults >= 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
