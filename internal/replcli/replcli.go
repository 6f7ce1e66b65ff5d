// Package replcli is the interactive debug loop behind "scan -c": type a
// predicate's abstracted string at the prompt and see its nearest
// neighbors and anomaly verdict immediately, without a source file.
package replcli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/compacter"
	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/charmbracelet/log"
)

// Searcher is the subset of scan.Scanner the REPL needs: rank the nearest
// neighbors of an already-compacted pattern at a given level.
type Searcher interface {
	Search(pattern string, level abstract.Level) ([]nearest.Expression, bool)
}

// REPL reads raw (uncompacted) predicate strings from in, one per line,
// and prints their ranked nearest neighbors to the logger. Ctrl+D (EOF) or
// a read error ends the loop.
type REPL struct {
	searcher Searcher
	level    abstract.Level
	requests int
}

// New returns a REPL driven by searcher at the given abstraction level.
func New(searcher Searcher, level abstract.Level) *REPL {
	return &REPL{searcher: searcher, level: level}
}

// Run starts the prompt loop, reading from in until EOF or an error.
func (r *REPL) Run(in io.Reader) error {
	log.Print("flagtrie debug console")
	log.Print("type an abstracted predicate string and press Enter (Ctrl+D to exit):")

	reader := bufio.NewReader(in)
	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			r.handle(trimmed)
		}
		if err != nil {
			return err
		}
	}
}

// handle runs one line through the search pipeline and logs the result.
func (r *REPL) handle(raw string) {
	r.requests++

	pattern := compacter.Compact(raw)
	start := time.Now()
	ranked, found := r.searcher.Search(pattern, r.level)
	elapsed := time.Since(start)

	log.Debugf("Took [ %v ] for pattern %q", elapsed, raw)
	status := "not found"
	if found {
		status = "found"
	}
	log.Printf("Expression %s in training dataset at level %s", status, r.level)

	if len(ranked) == 0 {
		log.Warn("No nearest expressions found")
		return
	}
	log.Printf("Found %d nearest expressions:", len(ranked))
	for i, e := range ranked {
		log.Printf("%2d. %-40s (cost: %d, occurrences: %d)", i+1, compacter.Expand(e.Pattern), e.Cost, e.Occurrences)
	}
}
