// Package cache memoizes nearest-neighbor search results so repeated
// predicates at the same abstraction level never re-run edit-distance
// search.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Cache maps a compacted pattern to its already-ranked nearest-expression
// list. Backed by a patricia.Trie rather than a plain Go map: cached
// compacted patterns share long common prefixes (shared AST shapes at a
// given abstraction level), which the radix structure compresses. Entries
// are never evicted - training data doesn't change mid-scan, so a cached
// result never goes stale.
//
// hits/misses are atomic.Int64 rather than plain int64: Get is called
// concurrently by every scan worker sharing this Cache, under only an
// RLock, so a plain increment would race.
type Cache struct {
	mu     sync.RWMutex
	trie   *patricia.Trie
	hits   atomic.Int64
	misses atomic.Int64
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{trie: patricia.NewTrie()}
}

// Get returns the cached ranked neighbor list for pattern, if present.
func (c *Cache) Get(pattern string) ([]nearest.Expression, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item := c.trie.Get(patricia.Prefix(pattern))
	if item == nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return item.([]nearest.Expression), true
}

// Put stores the ranked neighbor list for pattern.
func (c *Cache) Put(pattern string, ranked []nearest.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trie.Set(patricia.Prefix(pattern), ranked)
}

// Stats reports cumulative hit/miss counts observed through Get.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len reports the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	c.trie.Visit(func(patricia.Prefix, patricia.Item) error {
		n++
		return nil
	})
	return n
}
