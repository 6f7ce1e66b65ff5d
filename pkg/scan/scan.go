// Package scan orchestrates the end-to-end pipeline: abstract a predicate,
// compact it, check the cache, search the trie on a miss, rank and
// classify the result, and report it - either for one predicate or for
// every predicate in a set of files, in parallel.
package scan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bastiangx/flagtrie/pkg/abstract"
	"github.com/bastiangx/flagtrie/pkg/cache"
	"github.com/bastiangx/flagtrie/pkg/compacter"
	"github.com/bastiangx/flagtrie/pkg/nearest"
	"github.com/bastiangx/flagtrie/pkg/report"
	"github.com/bastiangx/flagtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// Config controls the scan pipeline. Field names and defaults mirror the
// scan CLI flags.
type Config struct {
	MaxCost          int
	MaxResults       int
	NumThreads       int
	AnomalyThreshold float64
	LogDir           string
	Verbose          bool
}

// Scanner runs the pipeline over one or more trained abstraction levels.
// Build one Trie and one Cache per level up front; ScanPredicate and
// ScanFiles are safe to call concurrently once construction is done.
type Scanner struct {
	Config Config
	Levels map[abstract.Level]*trie.Trie
	caches map[abstract.Level]*cache.Cache
	engine func(t *trie.Trie, maxThreads int) nearest.Engine
}

// New returns a Scanner over the given per-level tries, using the default
// trie-traversal search engine.
func New(cfg Config, levels map[abstract.Level]*trie.Trie) *Scanner {
	caches := make(map[abstract.Level]*cache.Cache, len(levels))
	for level := range levels {
		caches[level] = cache.New()
	}
	return &Scanner{
		Config: cfg,
		Levels: levels,
		caches: caches,
		engine: func(t *trie.Trie, maxThreads int) nearest.Engine {
			return &nearest.TrieTraversal{Trie: t, MaxThreads: maxThreads}
		},
	}
}

// ScanPredicate runs the full pipeline for one predicate at one level:
// abstract, compact, cache lookup, search on miss, rank, classify.
func (s *Scanner) ScanPredicate(pred abstract.Abstractor, level abstract.Level) (report.LevelResult, error) {
	t, ok := s.Levels[level]
	if !ok {
		return report.LevelResult{}, fmt.Errorf("scan: no trained trie for level %s", level)
	}

	abstracted, err := pred.Abstract(level)
	if err != nil {
		return report.LevelResult{}, fmt.Errorf("scan: abstract predicate: %w", err)
	}
	pattern := compacter.Compact(abstracted)

	_, found := t.LookUp(pattern)

	c := s.caches[level]
	ranked, ok := c.Get(pattern)
	if !ok {
		engine := s.engine(t, s.Config.NumThreads)
		matches := engine.Search(pattern, s.Config.MaxCost)
		ranked = nearest.Rank(matches, s.Config.MaxResults)
		c.Put(pattern, ranked)
	}

	isAnomaly := nearest.IsPotentialAnomaly(ranked, s.Config.AnomalyThreshold)

	expandedRanked := make([]nearest.Expression, len(ranked))
	for i, r := range ranked {
		expandedRanked[i] = nearest.Expression{
			Pattern:     compacter.Expand(r.Pattern),
			Cost:        r.Cost,
			Occurrences: r.Occurrences,
		}
	}

	return report.LevelResult{
		Level:     level,
		Pattern:   abstracted,
		Found:     found,
		Ranked:    expandedRanked,
		IsAnomaly: isAnomaly,
	}, nil
}

// Search runs the cache-then-trie-search pipeline for an already-compacted
// pattern at level, without going through an Abstractor. This is what
// internal/replcli's debug console calls directly: a pattern typed at the
// prompt never came from a source file.
func (s *Scanner) Search(pattern string, level abstract.Level) ([]nearest.Expression, bool) {
	t, ok := s.Levels[level]
	if !ok {
		return nil, false
	}
	_, found := t.LookUp(pattern)

	c := s.caches[level]
	ranked, ok := c.Get(pattern)
	if !ok {
		engine := s.engine(t, s.Config.NumThreads)
		matches := engine.Search(pattern, s.Config.MaxCost)
		ranked = nearest.Rank(matches, s.Config.MaxResults)
		c.Put(pattern, ranked)
	}
	return ranked, found
}

// ScanFile runs every level's pipeline over every predicate the collector
// finds in path, logging each predicate's results to logger and writing
// its Finding to exporter (if non-nil).
func (s *Scanner) ScanFile(collector abstract.Collector, path string, logger *log.Logger, exporter *report.Exporter) error {
	predicates, err := collector.Collect(path)
	if err != nil {
		logger.Errorf("Error: %v ... skipping", err)
		return nil
	}

	var summary fileSummary
	for _, pred := range predicates {
		var results []report.LevelResult
		foundAnyLevel := false
		for level := range s.Levels {
			r, err := s.ScanPredicate(pred, level)
			if err != nil {
				logger.Errorf("Error: %v ... skipping predicate", err)
				continue
			}
			report.LogLevelResult(logger, pred.Predicate(), r, s.Config.Verbose)
			results = append(results, r)
			summary.record(level, r.Found)
			foundAnyLevel = foundAnyLevel || r.Found
		}
		if foundAnyLevel {
			summary.found++
		}
		if exporter != nil {
			if err := exporter.Write(report.ToFinding(pred.Predicate(), results)); err != nil {
				logger.Warnf("Failed to write export record: %v", err)
			}
		}
	}
	summary.total = len(predicates)
	logger.Debugf("SUMMARY %s Total:%d Found:%d Not_found:%d L1_hit:%d L1_miss:%d L2_hit:%d L2_miss:%d",
		path, summary.total, summary.found, summary.total-summary.found,
		summary.l1Hit, summary.l1Miss, summary.l2Hit, summary.l2Miss)
	return nil
}

// fileSummary accumulates the per-file hit/miss counters reported in the
// SUMMARY line after a file's predicates have all been scanned.
type fileSummary struct {
	total, found                 int
	l1Hit, l1Miss, l2Hit, l2Miss int
}

func (s *fileSummary) record(level abstract.Level, found bool) {
	switch level {
	case abstract.LevelOne:
		if found {
			s.l1Hit++
		} else {
			s.l1Miss++
		}
	case abstract.LevelTwo:
		if found {
			s.l2Hit++
		} else {
			s.l2Miss++
		}
	}
}

// ScanFiles scans every file in paths across floor(sqrt(NumThreads))
// workers sharing one atomic file-index cursor, one log file per worker
// under Config.LogDir, and progress logged every 10% of files.
func (s *Scanner) ScanFiles(collector abstract.Collector, paths []string, exporter *report.Exporter) error {
	if len(paths) == 0 {
		return nil
	}

	var fileIndex atomic.Int64
	var reported atomic.Int64
	tenth := len(paths) / 10
	if tenth == 0 {
		tenth = len(paths)
	}

	workers := nearest.SqrtThreads(s.Config.NumThreads)
	log.Infof("Storing logs in %s", s.Config.LogDir)

	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			logPath := filepath.Join(s.Config.LogDir, fmt.Sprintf("thread_%d.log", worker))
			f, err := os.Create(logPath)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("scan: create log file %s: %w", logPath, err)
				}
				mu.Unlock()
				return
			}
			defer f.Close()
			writer := bufio.NewWriter(f)
			defer writer.Flush()
			workerLog := log.New(writer)

			for {
				i := fileIndex.Add(1) - 1
				if i >= int64(len(paths)) {
					return
				}
				path := paths[i]
				workerLog.Infof("Scanning File: %s", path)

				if err := s.ScanFile(collector, path, workerLog, exporter); err != nil {
					workerLog.Errorf("Error: %v", err)
				}

				done := fileIndex.Load()
				if int(done)%tenth == 0 && reported.Load() < done {
					reported.Store(done)
					log.Infof("Scan progress:%d/%d ... in progress", done, len(paths))
				}
			}
		}(w)
	}
	wg.Wait()
	return firstErr
}
