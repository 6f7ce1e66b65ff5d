// Package trie implements a character-level trie over compacted predicate
// patterns, tracking occurrence counts along every insertion path and the
// set of contributors behind every terminal pattern.
package trie

import "sort"

// Node is one character position in the trie. Internal nodes may also be
// terminal: a pattern can be a strict prefix of a longer one.
type Node struct {
	char         byte
	occurrences  int
	terminal     bool
	contributors map[int64]int
	children     map[byte]*Node
}

func newNode(c byte) *Node {
	return &Node{char: c, children: make(map[byte]*Node)}
}

// Path is one terminal pattern recorded in the trie, with its total
// occurrence count. Populated once, after Build, for parallel traversal.
type Path struct {
	Pattern     string
	Occurrences int
}

// Trie stores compacted patterns inserted via Insert. Build it once (single
// writer), then read freely from many goroutines: LookUp, Paths, Alphabet,
// and VisitTerminals never mutate the tree.
type Trie struct {
	root     *Node
	alphabet map[byte]struct{}
	paths    []Path
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{
		root:     newNode(0),
		alphabet: make(map[byte]struct{}),
	}
}

// Insert adds a compacted pattern to the trie, incrementing the occurrence
// count of every node on its path (not just the terminal), and recording
// contributorID against the terminal node's contributor map.
func (t *Trie) Insert(pattern string, contributorID int64) {
	node := t.root
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		node.occurrences++
		child, ok := node.children[c]
		if !ok {
			child = newNode(c)
			node.children[c] = child
		}
		node = child
		t.alphabet[c] = struct{}{}
	}
	node.occurrences++
	node.terminal = true
	if node.contributors == nil {
		node.contributors = make(map[int64]int)
	}
	node.contributors[contributorID]++
}

// LookUp reports whether pattern is a terminal in the trie, and if so its
// occurrence count. A pattern that only exists as a non-terminal prefix of
// longer patterns is not found.
func (t *Trie) LookUp(pattern string) (occurrences int, found bool) {
	node := t.root
	for i := 0; i < len(pattern); i++ {
		child, ok := node.children[pattern[i]]
		if !ok {
			return 0, false
		}
		node = child
	}
	if !node.terminal {
		return 0, false
	}
	return node.occurrences, true
}

// Alphabet returns the set of characters that appear on any edge of the
// trie, built up during Insert.
func (t *Trie) Alphabet() map[byte]struct{} {
	return t.alphabet
}

// VisitTerminals walks the trie breadth-first and invokes fn for every
// terminal node, with its full compacted pattern, occurrence count, and
// contributor map.
func (t *Trie) VisitTerminals(fn func(pattern string, occurrences int, contributors map[int64]int)) {
	type queued struct {
		node   *Node
		prefix string
	}
	queue := []queued{{t.root, ""}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.node.terminal {
			fn(cur.prefix, cur.node.occurrences, cur.node.contributors)
		}
		for c, child := range cur.node.children {
			queue = append(queue, queued{child, cur.prefix + string(c)})
		}
	}
}

// BuildPaths populates the flat list of (pattern, occurrences) used by
// parallel nearest-neighbor search. Idempotent: a second call is a no-op if
// paths are already populated, matching the original's "call only once"
// build contract.
func (t *Trie) BuildPaths() {
	if len(t.paths) > 0 {
		return
	}
	t.VisitTerminals(func(pattern string, occurrences int, _ map[int64]int) {
		t.paths = append(t.paths, Path{Pattern: pattern, Occurrences: occurrences})
	})
}

// Paths returns the flat list of terminal patterns computed by BuildPaths.
func (t *Trie) Paths() []Path {
	return t.paths
}

// Sorted returns a copy of Paths ordered by occurrence count descending.
func (t *Trie) Sorted() []Path {
	sorted := make([]Path, len(t.paths))
	copy(sorted, t.paths)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Occurrences > sorted[j].Occurrences
	})
	return sorted
}
