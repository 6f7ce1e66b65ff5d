package nearest

import "testing"

func TestCandidateGenerationFindsTrainedNeighbor(t *testing.T) {
	tr := buildTestTrie()
	engine := &CandidateGeneration{Trie: tr}
	got := engine.Search("abc", 1)

	found := map[string]int{}
	for _, e := range got {
		found[e.Pattern] = e.Cost
	}
	if cost, ok := found["abc"]; !ok || cost != 0 {
		t.Errorf("expected exact match at cost 0, got %+v", found)
	}
	if cost, ok := found["abd"]; !ok || cost != 1 {
		t.Errorf("expected abd reachable at cost 1, got %+v", found)
	}
}

func TestSpliceHelpersMatchSTLSemantics(t *testing.T) {
	if got := spliceErase("abcdef", 2, 2); got != "abef" {
		t.Errorf("spliceErase = %q, want %q", got, "abef")
	}
	if got := spliceInsert("abc", 1, 2, 'x'); got != "axxbc" {
		t.Errorf("spliceInsert = %q, want %q", got, "axxbc")
	}
	if got := spliceReplace("abcdef", 1, 2, 'z'); got != "azzdef" {
		t.Errorf("spliceReplace = %q, want %q", got, "azzdef")
	}
	if got := spliceErase("ab", 1, 5); got != "a" {
		t.Errorf("spliceErase should clamp past end of string, got %q", got)
	}
}
