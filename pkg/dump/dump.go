// Package dump renders a source file's control-flow predicates as training
// corpus lines: one commented-out original expression followed by its
// LEVEL_ONE and LEVEL_TWO abstractions, the same two lines a training run
// consumes.
package dump

import (
	"fmt"
	"io"

	"github.com/bastiangx/flagtrie/pkg/abstract"
)

// Dump writes one comment line and two "AST_expression_<LEVEL>:" lines per
// predicate collector finds in path, to w. Both LEVEL_ONE and LEVEL_TWO are
// always emitted regardless of any single requested level - a corpus line
// only usable at one level would be useless for training a real scan,
// which always needs both.
func Dump(w io.Writer, collector abstract.Collector, path string, contributorID int64) error {
	predicates, err := collector.Collect(path)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	for _, pred := range predicates {
		one, err := pred.Abstract(abstract.LevelOne)
		if err != nil {
			continue
		}
		two, err := pred.Abstract(abstract.LevelTwo)
		if err != nil {
			continue
		}

		loc := pred.Predicate()
		fmt.Fprintf(w, "//%s\n", loc.Source)
		fmt.Fprintf(w, "%d,AST_expression_%s:%s\n", contributorID, abstract.LevelOne, one)
		fmt.Fprintf(w, "%d,AST_expression_%s:%s\n", contributorID, abstract.LevelTwo, two)
	}
	return nil
}
