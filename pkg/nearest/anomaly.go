package nearest

// IsPotentialAnomaly reports whether ranked (already ranked, not yet
// necessarily truncated) looks anomalous at the given threshold.
//
// ranked must contain exactly one cost-0 "base" entry - the target pattern
// itself, found verbatim in training - and at least one cost>0 entry to
// compare against; otherwise there's nothing to judge, and the answer is
// false. For every cost>0 entry, ratio = 100*base.Occurrences/entry.Occurrences
// is how rare the base is relative to that neighbor. If any neighbor's
// ratio exceeds threshold, the base isn't meaningfully underrepresented
// next to it, so the verdict is "not an anomaly".
func IsPotentialAnomaly(ranked []Expression, threshold float64) bool {
	if len(ranked) <= 1 {
		return false
	}

	var base Expression
	baseFound := false
	for _, e := range ranked {
		if e.Cost == 0 {
			base = e
			baseFound = true
			break
		}
	}
	if !baseFound {
		return false
	}

	nonZeroFound := false
	for _, e := range ranked {
		if e.Cost != 0 {
			nonZeroFound = true
			break
		}
	}
	if !nonZeroFound {
		return false
	}

	for _, e := range ranked {
		if e.Cost == 0 {
			continue
		}
		ratio := 100 * float64(base.Occurrences) / float64(e.Occurrences)
		if ratio > threshold {
			return false
		}
	}
	return true
}
