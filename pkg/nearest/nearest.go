// Package nearest finds trained patterns that are close, by edit distance,
// to a target compacted pattern, ranks them, and decides whether the
// target looks like an anomaly relative to what it found.
package nearest

// Expression is one candidate pattern returned by a search engine: how far
// it is from the target (Cost), and how often it was seen in training
// (Occurrences). Equality and set membership are defined over Pattern
// alone: an engine returns each pattern at most once, at the lowest cost
// it found, deduplicating with a map[string]Expression where it can reach
// a pattern more than once (Go has no user-definable map-key hash).
type Expression struct {
	Pattern     string
	Cost        int
	Occurrences int
}

// Engine searches a built trie for expressions near target, within cost
// maxCost. Implementations: TrieTraversal (default), CandidateGeneration,
// SymmetricDelete.
type Engine interface {
	Search(target string, maxCost int) []Expression
}
