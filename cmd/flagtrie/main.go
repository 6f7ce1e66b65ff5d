/*
Package main implements the flagtrie command line tool.

flagtrie trains a nearest-neighbor index over abstracted control-flow
predicates ("if" conditions, structurally normalized) and flags a source
predicate as a likely anomaly when its nearest trained neighbors are far
more common than it is - the ControlFlag approach to catching bugs that
look almost, but not quite, like an established pattern.

# Usage

Extract training corpus lines from a Go source file:

	flagtrie dump -f handler.go -g 42 -l 5 > corpus.txt

Train on that corpus and scan a set of files for anomalies:

	flagtrie scan -t corpus.txt -s files.txt -o logs/ -l 5

Drop into the interactive debug console instead of scanning files:

	flagtrie scan -t corpus.txt -c -l 5

Only language 5 (Go) has a collector in this module; the language default
comes from the config file and is 1 unless changed there.

# Command Line Flags

dump:

	-f string   source file to extract predicates from (required)
	-g int      contributor id stamped on every emitted line (default 0)
	-l int      source language: 1=C 2=Verilog 3=PHP 4=C++ 5=Go (default 1)

scan:

	-t string   training corpus file (required)
	-e string   single source file to scan
	-s string   file containing a newline-separated list of source files to scan
	-o string   directory to write per-worker log files into (default "logs")
	-cost int   maximum edit distance to search (default 2)
	-n int      maximum ranked neighbors to keep per predicate (default 5)
	-j int      worker thread budget; actual workers are floor(sqrt(j)) (default 1)
	-a float    anomaly threshold (default 3.0)
	-v int      log verbosity: 0=error 1=info 2=debug (default 0)
	-l int      source language: 1=C 2=Verilog 3=PHP 4=C++ 5=Go (default 1)
	-c          run the interactive debug console instead of scanning files
	-m string   also write a msgpack-encoded finding stream to this file
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/flagtrie/internal/logger"
	"github.com/bastiangx/flagtrie/internal/replcli"
	"github.com/bastiangx/flagtrie/pkg/abstract"
	_ "github.com/bastiangx/flagtrie/pkg/abstract/goast"
	"github.com/bastiangx/flagtrie/pkg/config"
	"github.com/bastiangx/flagtrie/pkg/corpus"
	"github.com/bastiangx/flagtrie/pkg/dump"
	"github.com/bastiangx/flagtrie/pkg/report"
	"github.com/bastiangx/flagtrie/pkg/scan"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "flagtrie"
	gh      = "https://github.com/bastiangx/flagtrie"
)

// sigHandler exits cleanly on interrupt or termination.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportCaller: false, ReportTimestamp: false})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ flagtrie ] catches control-flow predicates that don't look like the rest")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

func main() {
	sigHandler()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dump|scan> [flags]\n", AppName)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "dump":
		runDump(os.Args[2:])
	case "scan":
		runScan(os.Args[2:])
	case "-version", "--version":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s <dump|scan> [flags]\n", AppName)
		os.Exit(1)
	}
}

func runDump(args []string) {
	cfg, _, err := config.LoadConfigWithPriority("")
	if err != nil {
		cfg = config.DefaultConfig()
	}

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	sourceFile := fs.String("f", "", "source file to extract predicates from")
	contributorID := fs.Int64("g", 0, "contributor id stamped on every emitted line")
	language := fs.Int("l", cfg.Dump.Language, "source language: 1=C 2=Verilog 3=PHP 4=C++ 5=Go")
	fs.Parse(args)

	if *sourceFile == "" {
		fs.Usage()
		os.Exit(1)
	}

	collector, err := abstract.Lookup(abstract.Language(*language))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := dump.Dump(os.Stdout, collector, *sourceFile, *contributorID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v ... skipping\n", err)
	}
}

func runScan(args []string) {
	cfg, configPath, err := config.LoadConfigWithPriority("")
	if err != nil {
		cfg = config.DefaultConfig()
	}

	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	trainDataset := fs.String("t", "", "training corpus file")
	evalFile := fs.String("e", "", "single source file to scan")
	evalFileList := fs.String("s", "", "file containing a newline-separated list of source files to scan")
	logDir := fs.String("o", "logs", "directory to write per-worker log files into")
	maxCost := fs.Int("cost", cfg.Scan.MaxCost, "maximum edit distance to search")
	maxResults := fs.Int("n", cfg.Scan.MaxResults, "maximum ranked neighbors to keep per predicate")
	numThreads := fs.Int("j", cfg.Scan.NumThreads, "worker thread budget; actual workers are floor(sqrt(j))")
	anomalyThreshold := fs.Float64("a", cfg.Scan.AnomalyThreshold, "anomaly threshold")
	verbosity := fs.Int("v", cfg.Scan.LogLevel, "log verbosity: 0=error 1=info 2=debug")
	language := fs.Int("l", cfg.Scan.Language, "source language: 1=C 2=Verilog 3=PHP 4=C++ 5=Go")
	consoleMode := fs.Bool("c", false, "run the interactive debug console instead of scanning files")
	exportPath := fs.String("m", "", "also write a msgpack-encoded finding stream to this file")
	fs.Parse(args)

	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	log.SetLevel(logger.LevelFromVerbosity(*verbosity))

	if *trainDataset == "" {
		fmt.Fprintln(os.Stderr, "Error: -t training dataset is required")
		fs.Usage()
		os.Exit(1)
	}

	levels, err := corpus.LoadLevels(*trainDataset)
	if err != nil {
		log.Fatalf("Failed to load training dataset: %v", err)
	}

	collector, err := abstract.Lookup(abstract.Language(*language))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	scanner := scan.New(scan.Config{
		MaxCost:          *maxCost,
		MaxResults:       *maxResults,
		NumThreads:       *numThreads,
		AnomalyThreshold: *anomalyThreshold,
		LogDir:           *logDir,
		Verbose:          *verbosity >= 1,
	}, levels)

	if *consoleMode {
		repl := replcli.New(scanner, abstract.LevelOne)
		if err := repl.Run(os.Stdin); err != nil {
			os.Exit(0)
		}
		return
	}

	var exporter *report.Exporter
	if *exportPath != "" {
		f, err := os.Create(*exportPath)
		if err != nil {
			log.Fatalf("Failed to create export file: %v", err)
		}
		defer f.Close()
		exporter = report.NewExporter(f)
	}

	if err := os.MkdirAll(*logDir, 0755); err != nil {
		log.Fatalf("Failed to create log dir %s: %v", *logDir, err)
	}

	paths := collectEvalPaths(*evalFile, *evalFileList)
	if len(paths) == 0 {
		log.Fatal("Error: no source files to scan; pass -e or -s")
	}

	if err := scanner.ScanFiles(collector, paths, exporter); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
}

// collectEvalPaths merges a single -e file with every line of a -s
// list-of-files, mirroring the original scanner's two ways to name inputs.
func collectEvalPaths(evalFile, evalFileList string) []string {
	var paths []string
	if evalFile != "" {
		paths = append(paths, evalFile)
	}
	if evalFileList != "" {
		contents, err := os.ReadFile(evalFileList)
		if err != nil {
			log.Fatalf("Failed to read file list %s: %v", evalFileList, err)
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				paths = append(paths, line)
			}
		}
	}
	return paths
}
