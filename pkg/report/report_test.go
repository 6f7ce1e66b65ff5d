package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func TestLogLevelResultAnomalyAlwaysPrintsNeighbors(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetFormatter(log.TextFormatter)

	r := LevelResult{
		Level:     abstract.LevelOne,
		Pattern:   "(0(1))",
		Found:     false,
		IsAnomaly: true,
		Ranked:    []nearest.Expression{{Pattern: "(0(2))", Cost: 1, Occurrences: 9}},
	}
	LogLevelResult(logger, abstract.Predicate{}, r, false)

	out := buf.String()
	if !strings.Contains(out, "Expression is Potential anomaly") {
		t.Errorf("expected anomaly line, got: %s", out)
	}
	if !strings.Contains(out, "Did you mean:(0(2)) with editing cost:1 and occurrences:9") {
		t.Errorf("expected a Did you mean line, got: %s", out)
	}
}

func TestLogLevelResultOkayHidesNeighborsUnlessVerbose(t *testing.T) {
	r := LevelResult{
		Level:     abstract.LevelOne,
		Pattern:   "(0)",
		Found:     true,
		IsAnomaly: false,
		Ranked:    []nearest.Expression{{Pattern: "(0)", Cost: 0, Occurrences: 1}},
	}

	var quiet bytes.Buffer
	LogLevelResult(log.New(&quiet), abstract.Predicate{}, r, false)
	if strings.Contains(quiet.String(), "Did you mean") {
		t.Errorf("expected no neighbor lines for a non-anomalous result at non-verbose level, got: %s", quiet.String())
	}

	var verbose bytes.Buffer
	LogLevelResult(log.New(&verbose), abstract.Predicate{}, r, true)
	if !strings.Contains(verbose.String(), "Did you mean") {
		t.Errorf("expected neighbor lines when verbose, got: %s", verbose.String())
	}
}

func TestToFinding(t *testing.T) {
	pred := abstract.Predicate{File: "x.go", Line: 3, Source: "x > y"}
	results := []LevelResult{{
		Level:   abstract.LevelOne,
		Pattern: "(0(1))",
		Found:   true,
		Ranked:  []nearest.Expression{{Pattern: "(0(1))", Cost: 0, Occurrences: 2}},
	}}
	f := ToFinding(pred, results)
	if f.File != "x.go" || f.Line != 3 {
		t.Errorf("unexpected finding header: %+v", f)
	}
	if len(f.Levels) != 1 || f.Levels[0].Pattern != "(0(1))" {
		t.Errorf("unexpected level findings: %+v", f.Levels)
	}
}

func TestExporterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter(&buf)
	finding := Finding{File: "a.go", Line: 5, Levels: []LevelFinding{{Level: "ONE", Pattern: "(0)"}}}
	if err := exp.Write(finding); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got Finding
	if err := msgpack.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.File != "a.go" || got.Line != 5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
