package nearest

import "testing"

func TestSymmetricDeleteFindsExactMatch(t *testing.T) {
	tr := buildTestTrie()
	engine := &SymmetricDelete{Trie: tr, MaxCost: 2}
	got := engine.Search("abc", 2)

	found := false
	for _, e := range got {
		if e.Pattern == "abc" && e.Cost == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected exact self-match at cost 0, got %+v", got)
	}
}

func TestSymmetricDeleteFindsSingleDeletionNeighbor(t *testing.T) {
	tr := buildTestTrie()
	tr2 := tr
	_ = tr2
	engine := &SymmetricDelete{Trie: tr, MaxCost: 2}
	got := engine.Search("aabc", 2) // one insertion away from "abc"

	found := false
	for _, e := range got {
		if e.Pattern == "abc" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected abc reachable via symmetric delete from aabc, got %+v", got)
	}
}

func TestGenerateDeletionVariantsIncludesSelf(t *testing.T) {
	variants := generateDeletionVariants("abc", 2)
	if depth, ok := variants["abc"]; !ok || depth != 0 {
		t.Errorf("expected self at depth 0, got %v", variants)
	}
}
