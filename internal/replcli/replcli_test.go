package replcli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/charmbracelet/log"
)

type stubSearcher struct {
	ranked []nearest.Expression
	found  bool
}

func (s stubSearcher) Search(pattern string, level abstract.Level) ([]nearest.Expression, bool) {
	return s.ranked, s.found
}

func TestRunPrintsNearestExpressions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	log.SetDefault(logger)
	logger.SetFormatter(log.TextFormatter)

	searcher := stubSearcher{
		ranked: []nearest.Expression{{Pattern: "(0(1))", Cost: 1, Occurrences: 4}},
		found:  true,
	}
	r := New(searcher, abstract.LevelOne)

	in := strings.NewReader("(0(2))\n")
	if err := r.Run(in); err != io.EOF {
		t.Fatalf("expected io.EOF at end of input, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Found 1 nearest expressions") {
		t.Errorf("expected a result count line, got: %s", out)
	}
	if !strings.Contains(out, "cost: 1, occurrences: 4") {
		t.Errorf("expected the ranked neighbor to be printed, got: %s", out)
	}
}

func TestRunWarnsWhenNoResults(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	log.SetDefault(logger)

	r := New(stubSearcher{}, abstract.LevelOne)
	in := strings.NewReader("(0)\n")
	_ = r.Run(in)

	if !strings.Contains(buf.String(), "No nearest expressions found") {
		t.Errorf("expected a no-results warning, got: %s", buf.String())
	}
}
