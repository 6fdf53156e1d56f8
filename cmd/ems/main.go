// ems runs the Edited Motif Search over a FASTA-like input file,
// writing one annotated motif per line and appending a time/memory
// summary line for the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine"
	"github.com/aaw/ems/engine/parallel"
	"github.com/aaw/ems/engine/trie"
	"github.com/aaw/ems/engine/v1"
	"github.com/aaw/ems/ioformat"
	"github.com/pkg/errors"
)

var usage = `
ems searches a set of sequences for motifs of length l such that every
sequence has a substring within edit distance d of the motif.

Usage: ems [OPTIONS] <input-file>

Parameters:
`

var (
	version = flag.String("s", "2", "algorithm version: 1, 2, 2m, or 2p")
	l       = flag.Int("l", 0, "motif length, must be > 0")
	d       = flag.Int("d", -1, "max edit distance, must be >= 0")
	threads = flag.Int("t", runtime.NumCPU(), "worker count for version 2p")
)

var logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)

func selectEngine(version string, workers int) (engine.Engine, string, error) {
	switch version {
	case "1":
		return v1.New(), "v1", nil
	case "2":
		return trie.NewFast(), "v2", nil
	case "2m":
		return trie.NewSimple(), "v2m", nil
	case "2p":
		return parallel.New(workers), "v2p", nil
	default:
		return nil, "", &engine.ConfigError{Msg: fmt.Sprintf("unknown version %q", version)}
	}
}

func run() error {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *l <= 0 {
		return &engine.ConfigError{Msg: "-l must be > 0"}
	}
	if *d < 0 {
		return &engine.ConfigError{Msg: "-d must be >= 0"}
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return &engine.ConfigError{Msg: "exactly one input file is required"}
	}
	inputPath := flag.Arg(0)

	eng, engineName, err := selectEngine(*version, *threads)
	if err != nil {
		return err
	}

	alpha := alphabet.New(alphabet.DNA)
	logger.Printf("l = %d, d = %d, input = %s, engine = %s\n", *l, *d, inputPath, engineName)

	read, err := ioformat.ReadSequences(alpha, inputPath)
	if err != nil {
		return errors.Wrap(err, "ems: reading input")
	}
	logger.Printf("Processing %d sequences...\n", len(read.Sequences))

	start := time.Now()
	result, err := eng.Search(context.Background(), alpha, read.Sequences, *l, *d)
	if err != nil {
		return errors.Wrap(err, "ems: search")
	}
	elapsed := time.Since(start)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	kb := mem.HeapAlloc / 1024

	outPath, err := ioformat.OutputPath(inputPath, engineName, *l, *d)
	if err != nil {
		return errors.Wrap(err, "ems: deriving output path")
	}
	if err := ioformat.WriteMotifs(outPath, result.Motifs, read.Consensus, *l); err != nil {
		return errors.Wrap(err, "ems: writing output")
	}
	if err := ioformat.AppendTimeMemoryLog(inputPath, engineName, *l, *d, *threads, elapsed.Seconds(), kb, len(result.Motifs)); err != nil {
		return errors.Wrap(err, "ems: appending time/memory log")
	}

	logger.Printf("Found %d motifs in %v, wrote %s\n", len(result.Motifs), elapsed, outPath)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ems: %v\n", err)
		os.Exit(1)
	}
}
