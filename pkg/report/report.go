// Package report formats scan results into the log lines flagtrie emits
// for every predicate, and into a machine-readable export stream.
package report

import (
	"io"
	"sync"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// LevelResult is one abstraction level's outcome for a single predicate:
// whether the pattern was found verbatim in training, and its ranked
// nearest neighbors.
type LevelResult struct {
	Level      abstract.Level
	Pattern    string
	Found      bool
	Ranked     []nearest.Expression
	IsAnomaly  bool
}

// Finding is everything recorded about one scanned predicate, across every
// abstraction level it was checked at.
type Finding struct {
	File    string `msgpack:"file"`
	Line    int    `msgpack:"line"`
	Source  string `msgpack:"source"`
	Levels  []LevelFinding `msgpack:"levels"`
}

// LevelFinding is the msgpack-exportable shape of a LevelResult.
type LevelFinding struct {
	Level     string  `msgpack:"level"`
	Pattern   string  `msgpack:"pattern"`
	Found     bool    `msgpack:"found"`
	IsAnomaly bool    `msgpack:"anomaly"`
	Neighbors []NeighborFinding `msgpack:"neighbors"`
}

// NeighborFinding is one "Did you mean" suggestion in exportable form.
type NeighborFinding struct {
	Pattern     string `msgpack:"pattern"`
	Cost        int    `msgpack:"cost"`
	Occurrences int    `msgpack:"occurrences"`
}

// LogLevelResult writes the per-level log lines for one predicate:
//
//	Level:<LEVEL> Expression:<pattern> found|not found in training dataset: [source]
//	Expression is Okay|Expression is Potential anomaly
//	Did you mean:<pattern> with editing cost:<n> and occurrences:<m>   (zero or more)
//
// "Did you mean" lines are always printed when the predicate is anomalous,
// and additionally whenever verbose is true (the scan's -v level is INFO
// or above), matching the training corpus's own self-check convention.
func LogLevelResult(logger *log.Logger, pred abstract.Predicate, r LevelResult, verbose bool) {
	status := "not found"
	if r.Found {
		status = "found"
	}
	if pred.File != "" {
		logger.Printf("Level:%s Expression:%s %s in training dataset: Source file: %s:%d",
			r.Level, r.Pattern, status, pred.File, pred.Line)
	} else {
		logger.Printf("Level:%s Expression:%s %s in training dataset:", r.Level, r.Pattern, status)
	}

	printNeighbors := r.IsAnomaly || verbose
	if r.IsAnomaly {
		logger.Print("Expression is Potential anomaly")
	} else {
		logger.Print("Expression is Okay")
	}
	if printNeighbors {
		for _, n := range r.Ranked {
			logger.Printf("Did you mean:%s with editing cost:%d and occurrences:%d",
				n.Pattern, n.Cost, n.Occurrences)
		}
	}
}

// ToFinding converts a predicate's accumulated LevelResults into the
// exportable Finding shape.
func ToFinding(pred abstract.Predicate, results []LevelResult) Finding {
	f := Finding{File: pred.File, Line: pred.Line, Source: pred.Source}
	for _, r := range results {
		lf := LevelFinding{
			Level:     r.Level.String(),
			Pattern:   r.Pattern,
			Found:     r.Found,
			IsAnomaly: r.IsAnomaly,
		}
		for _, n := range r.Ranked {
			lf.Neighbors = append(lf.Neighbors, NeighborFinding{
				Pattern: n.Pattern, Cost: n.Cost, Occurrences: n.Occurrences,
			})
		}
		f.Levels = append(f.Levels, lf)
	}
	return f
}

// Exporter streams Finding records out as msgpack, one call to Write per
// Finding, for downstream machine consumption alongside the human-readable
// log. Safe for concurrent use: scan.Scanner.ScanFiles calls Write from
// every worker goroutine onto the same underlying writer.
type Exporter struct {
	mu  sync.Mutex
	enc *msgpack.Encoder
}

// NewExporter wraps w in a msgpack stream encoder.
func NewExporter(w io.Writer) *Exporter {
	return &Exporter{enc: msgpack.NewEncoder(w)}
}

// Write appends one Finding to the export stream.
func (e *Exporter) Write(f Finding) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(f)
}
