package nearest

import (
	"sync"
	"sync/atomic"

	"github.com/bastiangx/flagtrie/pkg/trie"
)

// TrieTraversal is the default search engine: it walks every trained
// pattern (the trie's flat path list) and keeps the ones within maxCost
// edit distance of the target: one edit-distance computation per trained
// pattern.
//
// Work is split across floor(sqrt(maxThreads)) workers sharing one atomic
// cursor into the path list, matching the nested-parallelism budget the
// file-scan loop also uses: scanning N files each spawning sqrt(threads)
// search workers keeps total goroutines bounded by threads, roughly.
type TrieTraversal struct {
	Trie       *trie.Trie
	MaxThreads int
}

// Search implements Engine.
func (e *TrieTraversal) Search(target string, maxCost int) []Expression {
	paths := e.Trie.Paths()

	var cursor atomic.Int64
	var mu sync.Mutex
	var results []Expression

	workers := SqrtThreads(e.MaxThreads)
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := cursor.Add(1) - 1
				if i >= int64(len(paths)) {
					return
				}
				p := paths[i]
				cost := EditDistance(p.Pattern, target)
				if cost <= maxCost {
					mu.Lock()
					results = append(results, Expression{
						Pattern:     p.Pattern,
						Cost:        cost,
						Occurrences: p.Occurrences,
					})
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return results
}

// SqrtThreads returns floor(sqrt(n)), the thread budget for a search engine
// nested inside an already-parallel file scan using n total threads.
func SqrtThreads(n int) int {
	if n <= 0 {
		return 1
	}
	root := 0
	for (root+1)*(root+1) <= n {
		root++
	}
	if root < 1 {
		return 1
	}
	return root
}
