package nearest

import (
	"strings"

	"github.com/bastiangx/flagtrie/pkg/trie"
)

// CandidateGeneration is a Norvig-style search engine: it generates every
// string within maxCost replace/insert/delete edits of the target, then
// keeps the ones that are actually trained patterns (an exact trie lookup).
// The candidate count grows with len(target), the alphabet size and
// maxCost, independent of trie size.
type CandidateGeneration struct {
	Trie *trie.Trie
}

// Search implements Engine.
func (e *CandidateGeneration) Search(target string, maxCost int) []Expression {
	alphabet := e.Trie.Alphabet()
	candidates := generateCandidateExpressions(target, maxCost, alphabet)

	var result []Expression
	for expr, cost := range candidates {
		occurrences, found := e.Trie.LookUp(expr)
		if found {
			result = append(result, Expression{Pattern: expr, Cost: cost, Occurrences: occurrences})
		}
	}
	return result
}

// generateCandidateExpressions expands target into every string reachable
// within maxCost edits. Expressions at wave N are generated from
// expressions at wave N-1 by one single-character replace, insert, or
// delete at each position (insertions also at the end); a string keeps the
// cost of the first wave that produced it.
func generateCandidateExpressions(target string, maxCost int, alphabet map[byte]struct{}) map[string]int {
	result := map[string]int{target: 0}

	for cost := 1; cost <= maxCost; cost++ {
		var prevWave []string
		for expr, c := range result {
			if c == cost-1 {
				prevWave = append(prevWave, expr)
			}
		}
		for _, expr := range prevWave {
			performEditsForDistanceOne(expr, cost, alphabet, result)
		}
	}
	return result
}

func performEditsForDistanceOne(expr string, cost int, alphabet map[byte]struct{}, result map[string]int) {
	for i := 0; i < len(expr); i++ {
		for c := range alphabet {
			replaced := spliceReplace(expr, i, 1, c)
			insertIfAbsent(result, replaced, cost)

			inserted := spliceInsert(expr, i, 1, c)
			insertIfAbsent(result, inserted, cost)
		}
		deleted := spliceErase(expr, i, 1)
		insertIfAbsent(result, deleted, cost)
	}
	for c := range alphabet {
		insertIfAbsent(result, spliceInsert(expr, len(expr), 1, c), cost)
	}
}

func insertIfAbsent(m map[string]int, key string, cost int) {
	if _, ok := m[key]; !ok {
		m[key] = cost
	}
}

// spliceReplace mirrors std::string::replace(pos, len, count, ch): replace
// up to len characters starting at pos with count copies of ch.
func spliceReplace(s string, pos, n int, c byte) string {
	end := pos + n
	if end > len(s) {
		end = len(s)
	}
	var b strings.Builder
	b.WriteString(s[:pos])
	b.Write(repeat(c, n))
	b.WriteString(s[end:])
	return b.String()
}

// spliceInsert mirrors std::string::insert(pos, count, ch).
func spliceInsert(s string, pos, n int, c byte) string {
	var b strings.Builder
	b.WriteString(s[:pos])
	b.Write(repeat(c, n))
	b.WriteString(s[pos:])
	return b.String()
}

// spliceErase mirrors std::string::erase(pos, len).
func spliceErase(s string, pos, n int) string {
	end := pos + n
	if end > len(s) {
		end = len(s)
	}
	return s[:pos] + s[end:]
}

func repeat(c byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return b
}
