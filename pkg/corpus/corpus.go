// Package corpus loads a training dataset into a trie.Trie.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/compacter"
	"github.com/bastiangx/flagtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// ErrMalformedCorpus is returned when a training file contains zero
// recognizable records for the requested level - it isn't that the corpus
// is empty, it's that nothing in it looks like output this tool produced.
var ErrMalformedCorpus = errors.New("corpus: no recognizable AST_expression records found")

// Load reads a training dataset file and builds a Trie over every line
// recognized for level. A line is recognized when it has the shape
// "<contributorID>,AST_expression_<LEVEL>:<pattern>" for the requested
// level; every other line (comments, other levels, malformed rows) is
// silently skipped.
func Load(path string, level abstract.Level) (*trie.Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	marker := "AST_expression_" + level.String() + ":"
	t := trie.New()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	recognized := 0
	lineNo := 1
	for scanner.Scan() {
		line := scanner.Text()
		if pattern, contributorID, ok := parseRecord(line, marker); ok {
			t.Insert(compacter.Compact(pattern), contributorID)
			recognized++
		}
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: reading %s: %w", path, err)
	}

	if recognized == 0 {
		return nil, ErrMalformedCorpus
	}

	t.BuildPaths()
	log.Debugf("corpus: loaded %d %s-level records from %s (%d lines scanned)",
		recognized, level, path, lineNo-1)
	return t, nil
}

// LoadLevels trains the two tries a scan actually uses - LEVEL_ONE and
// LEVEL_TWO - from the same training file, logging start/complete
// brackets and a per-level build duration the way the training step has
// always logged them.
func LoadLevels(path string) (map[abstract.Level]*trie.Trie, error) {
	log.Info("Training: start.")

	levels := map[abstract.Level]*trie.Trie{}
	for _, level := range []abstract.Level{abstract.LevelOne, abstract.LevelTwo} {
		started := time.Now()
		t, err := Load(path, level)
		if err != nil {
			return nil, err
		}
		levels[level] = t
		log.Infof("Trie %s build took: %s", level, time.Since(started))
	}

	log.Info("Training: complete.")
	return levels, nil
}

// parseRecord recognizes a "<contributorID>,AST_expression_<LEVEL>:<pattern>"
// line. The first comma is the field separator; everything before it is the
// contributor id, everything after the marker is the pattern.
func parseRecord(line, marker string) (pattern string, contributorID int64, ok bool) {
	commaPos := strings.IndexByte(line, ',')
	if commaPos < 0 {
		return "", 0, false
	}
	rest := line[commaPos+1:]
	if !strings.HasPrefix(rest, marker) {
		return "", 0, false
	}
	id, err := strconv.ParseInt(line[:commaPos], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return rest[len(marker):], id, true
}
