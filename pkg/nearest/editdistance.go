package nearest

// EditDistance computes the Levenshtein distance between source and target
// using the classic two-row Wagner-Fischer dynamic program: only the
// previous row is kept in memory, since each cell only depends on the row
// above and the cell to its left.
func EditDistance(source, target string) int {
	current := make([]int, len(target)+1)
	for i := range current {
		current[i] = i
	}
	previous := make([]int, len(current))
	copy(previous, current)

	charsRead := 1
	for i := 0; i < len(source); i++ {
		sourceChar := source[i]
		current[0] = charsRead
		charsRead++

		for j := 1; j <= len(target); j++ {
			substitutionCost := 0
			if sourceChar != target[j-1] {
				substitutionCost = 1
			}
			current[j] = min3(
				current[j-1]+1,          // insert
				previous[j]+1,           // delete
				previous[j-1]+substitutionCost, // substitute
			)
		}
		previous, current = current, previous
	}

	return previous[len(target)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
