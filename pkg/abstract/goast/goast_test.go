package goast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/flagtrie/pkg/abstract"
)

const sample = `package sample

func f(x int, y int) int {
	if x > y {
		return x
	}
	if x == 0 && y == 0 {
		return 0
	}
	return y
}
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectFindsEveryIfCondition(t *testing.T) {
	path := writeSample(t)
	preds, err := Collector{}.Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("expected 2 if-conditions, got %d", len(preds))
	}
}

func TestAbstractLevelsDiffer(t *testing.T) {
	path := writeSample(t)
	preds, err := Collector{}.Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	one, _ := preds[0].Abstract(abstract.LevelOne)
	max, _ := preds[0].Abstract(abstract.LevelMax)
	if one == max {
		t.Error("expected LevelOne and LevelMax renderings to differ for an expression with identifiers")
	}
}

func TestPredicateSourceIsLiteralText(t *testing.T) {
	path := writeSample(t)
	preds, err := Collector{}.Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got := preds[0].Predicate().Source; got != "x > y" {
		t.Errorf("expected literal source text %q, got %q", "x > y", got)
	}
}

func TestRegisteredForLanguageGo(t *testing.T) {
	c, err := abstract.Lookup(abstract.LanguageGo)
	if err != nil {
		t.Fatalf("expected LanguageGo to be registered, got error: %v", err)
	}
	if c == nil {
		t.Fatal("expected a non-nil collector")
	}
}
