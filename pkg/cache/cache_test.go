package cache

import (
	"sync"
	"testing"

	"github.com/bastiangx/flagtrie/pkg/nearest"
)

func TestGetMissThenPutThenHit(t *testing.T) {
	c := New()
	if _, ok := c.Get("(0)"); ok {
		t.Fatal("expected miss on empty cache")
	}
	ranked := []nearest.Expression{{Pattern: "(0)", Cost: 0, Occurrences: 3}}
	c.Put("(0)", ranked)

	got, ok := c.Get("(0)")
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got) != 1 || got[0].Pattern != "(0)" {
		t.Errorf("unexpected cached value: %+v", got)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got hits=%d misses=%d", hits, misses)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put("pattern", []nearest.Expression{{Pattern: "pattern", Cost: 0}})
			c.Get("pattern")
		}(i)
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("expected exactly one distinct cached pattern, got %d", c.Len())
	}
}
