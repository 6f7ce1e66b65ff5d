package trie

import "testing"

func TestInsertAndLookUp(t *testing.T) {
	tr := New()
	tr.Insert("(0(1))", 42)
	tr.Insert("(0(1))", 7)
	tr.Insert("(0(2))", 42)

	occ, found := tr.LookUp("(0(1))")
	if !found {
		t.Fatal("expected pattern to be found")
	}
	if occ != 2 {
		t.Errorf("expected occurrences=2, got %d", occ)
	}

	if _, found := tr.LookUp("(0(9))"); found {
		t.Error("expected unseen pattern to be not found")
	}
}

func TestInternalNodeCanBeTerminal(t *testing.T) {
	tr := New()
	tr.Insert("(0", 1)
	tr.Insert("(0(1))", 1)

	occ, found := tr.LookUp("(0")
	if !found {
		t.Fatal("expected prefix pattern to also be terminal")
	}
	// The "(0" node counts its own insertion plus the "(0(1))" insertion
	// that passes through it.
	if occ != 2 {
		t.Errorf("expected occurrences=2 for the shorter pattern, got %d", occ)
	}
}

func TestOccurrencesAccumulateAlongEveryPathNode(t *testing.T) {
	tr := New()
	tr.Insert("abc", 1)
	tr.Insert("abd", 1)

	if tr.root.children['a'].occurrences != 2 {
		t.Errorf("expected shared prefix node to see both insertions, got %d",
			tr.root.children['a'].occurrences)
	}
}

func TestAlphabetCollectsEveryEdgeCharacter(t *testing.T) {
	tr := New()
	tr.Insert("ab", 1)
	tr.Insert("xy", 1)

	alphabet := tr.Alphabet()
	for _, c := range []byte("abxy") {
		if _, ok := alphabet[c]; !ok {
			t.Errorf("expected %q in alphabet", c)
		}
	}
	if len(alphabet) != 4 {
		t.Errorf("expected exactly 4 distinct edge chars, got %d", len(alphabet))
	}
}

func TestBuildPathsIsIdempotentAndComplete(t *testing.T) {
	tr := New()
	tr.Insert("one", 1)
	tr.Insert("two", 2)
	tr.Insert("one", 3)

	tr.BuildPaths()
	first := tr.Paths()
	tr.BuildPaths() // must be a no-op
	if len(tr.Paths()) != len(first) {
		t.Fatal("BuildPaths must not duplicate entries on a second call")
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 distinct terminal patterns, got %d", len(first))
	}
}

func TestSortedOrdersByOccurrencesDescending(t *testing.T) {
	tr := New()
	tr.Insert("rare", 1)
	tr.Insert("common", 1)
	tr.Insert("common", 2)
	tr.Insert("common", 3)
	tr.BuildPaths()

	sorted := tr.Sorted()
	if sorted[0].Pattern != "common" {
		t.Errorf("expected 'common' first, got %q", sorted[0].Pattern)
	}
}

func TestVisitTerminalsExposesContributors(t *testing.T) {
	tr := New()
	tr.Insert("x", 11)
	tr.Insert("x", 11)
	tr.Insert("x", 22)

	var seen map[int64]int
	tr.VisitTerminals(func(pattern string, occurrences int, contributors map[int64]int) {
		if pattern == "x" {
			seen = contributors
		}
	})
	if seen[11] != 2 || seen[22] != 1 {
		t.Errorf("unexpected contributor counts: %v", seen)
	}
}
