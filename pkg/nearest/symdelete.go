package nearest

import (
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/flagtrie/pkg/trie"
)

// deletionEntry is what the symmetric-delete index stores per deletion
// variant: which trained patterns reduce to that variant, and at what
// deletion depth each one does.
type deletionEntry struct {
	pattern     string
	occurrences int
	depth       int
}

// SymmetricDelete is the deletion-only search engine: rather than
// considering every replace/insert/delete edit, it only ever deletes
// characters, both from the target and (at build time) from every trained
// pattern, and looks for a variant string the two waves have in common.
// Orders of magnitude fewer candidates than CandidateGeneration for the
// same maxCost, at the price of only catching edits that are pure
// deletions on one side or the other.
//
// index is a patricia.Trie instead of a plain map for the same reason
// Cache uses one: deletion variants of related patterns share long common
// prefixes.
type SymmetricDelete struct {
	Trie    *trie.Trie
	MaxCost int
	index   *patricia.Trie
	built   bool
}

// Build populates the deletion-variant index from every trained pattern.
// Must run once after the trie is built and before the first Search; Search
// calls it lazily if it hasn't run yet.
func (e *SymmetricDelete) Build() {
	if e.built {
		return
	}
	e.index = patricia.NewTrie()
	e.Trie.VisitTerminals(func(pattern string, occurrences int, _ map[int64]int) {
		variants := generateDeletionVariants(pattern, e.MaxCost)
		for variant, depth := range variants {
			key := patricia.Prefix(variant)
			existing := e.index.Get(key)
			var entries []deletionEntry
			if existing != nil {
				entries = existing.([]deletionEntry)
			}
			entries = append(entries, deletionEntry{pattern: pattern, occurrences: occurrences, depth: depth})
			e.index.Set(key, entries)
		}
	})
	e.built = true
}

// Search implements Engine.
func (e *SymmetricDelete) Search(target string, maxCost int) []Expression {
	e.Build()

	variants := generateDeletionVariants(target, maxCost)

	// A pattern can meet the target through several variants; keep only
	// its lowest cost.
	best := map[string]Expression{}
	for variant, targetDepth := range variants {
		item := e.index.Get(patricia.Prefix(variant))
		if item == nil {
			continue
		}
		for _, entry := range item.([]deletionEntry) {
			cost := targetDepth + entry.depth
			if cost > maxCost {
				continue
			}
			if prev, ok := best[entry.pattern]; ok && prev.Cost <= cost {
				continue
			}
			best[entry.pattern] = Expression{
				Pattern:     entry.pattern,
				Cost:        cost,
				Occurrences: entry.occurrences,
			}
		}
	}
	result := make([]Expression, 0, len(best))
	for _, expr := range best {
		result = append(result, expr)
	}
	return result
}

// generateDeletionVariants returns every string reachable from target by
// deleting up to maxCost characters, mapped to the deletion depth (wave)
// that first produced it. Variants at depth N are generated from variants
// at depth N-1 by erasing one character at each position.
func generateDeletionVariants(target string, maxCost int) map[string]int {
	result := map[string]int{target: 0}

	for depth := 1; depth <= maxCost; depth++ {
		var prevWave []string
		for expr, d := range result {
			if d == depth-1 {
				prevWave = append(prevWave, expr)
			}
		}
		for _, expr := range prevWave {
			for i := 0; i < len(expr); i++ {
				deleted := spliceErase(expr, i, 1)
				insertIfAbsent(result, deleted, depth)
			}
		}
	}
	return result
}
