// Package ioformat implements the FASTA-like reader, the annotated
// output writer and the time/memory log line that spec.md §6 treats
// as external collaborators: encoded sequences in, a decoded motif
// list out, a log file appended once per run.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/editdist"
	"github.com/pkg/errors"
)

// plantedMotif recognizes a "Motif <LETTERS> planted" header line
// (§6): the captured letters are the consensus used for distance
// annotation, nothing more.
var plantedMotif = regexp.MustCompile(`Motif\s+([A-Za-z]+)\s+planted`)

// ReadResult is the parsed contents of one input file.
type ReadResult struct {
	Sequences [][]alphabet.Symbol
	// Consensus is the planted-motif header's letters, upper-cased,
	// or "" if no line matched the pattern.
	Consensus string
}

// ReadSequences reads a FASTA-like file: '>' lines are headers and
// skipped, every other non-empty line is a sequence upper-cased and
// U→T before encoding. A first line matching "Motif <LETTERS>
// planted" is captured as the reporting consensus rather than treated
// as a header or a sequence.
func ReadSequences(alpha *alphabet.Alphabet, path string) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, errors.Wrapf(err, "ioformat: open %s", path)
	}
	defer f.Close()
	return readSequences(alpha, f)
}

func readSequences(alpha *alphabet.Alphabet, r io.Reader) (ReadResult, error) {
	var result ReadResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if m := plantedMotif.FindStringSubmatch(line); m != nil {
				result.Consensus = strings.ToUpper(m[1])
				continue
			}
		}
		if strings.HasPrefix(line, ">") {
			continue
		}
		result.Sequences = append(result.Sequences, alpha.Encode(line))
	}
	if err := scanner.Err(); err != nil {
		return ReadResult{}, errors.Wrap(err, "ioformat: scan")
	}
	return result, nil
}

// OutputPath derives <input-dir>/output/out_<basename>_<engine>_l<l>_d<d>.txt
// and ensures the output directory exists.
func OutputPath(inputPath, engineName string, l, d int) (string, error) {
	dir := filepath.Join(filepath.Dir(inputPath), "output")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "ioformat: create output dir %s", dir)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("out_%s_%s_l%d_d%d.txt", base, engineName, l, d)
	return filepath.Join(dir, name), nil
}

// WriteMotifs writes one motif per line, each annotated with its edit
// distance to consensus (when consensus is non-empty and the same
// length as l) or "N/A" otherwise.
func WriteMotifs(path string, motifs []string, consensus string, l int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "ioformat: create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	annotate := len(consensus) == l
	for _, m := range motifs {
		if annotate {
			fmt.Fprintf(w, "%s %d\n", m, editdist.Distance(m, consensus))
		} else {
			fmt.Fprintf(w, "%s N/A\n", m)
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "ioformat: write %s", path)
	}
	return nil
}

// AppendTimeMemoryLog appends one line to
// <input-dir>/output/emsTimeMemory.log (§6).
func AppendTimeMemoryLog(inputPath, engineName string, l, d, threads int, secs float64, kb uint64, count int) error {
	dir := filepath.Join(filepath.Dir(inputPath), "output")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "ioformat: create output dir %s", dir)
	}
	logPath := filepath.Join(dir, "emsTimeMemory.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "ioformat: open %s", logPath)
	}
	defer f.Close()

	line := fmt.Sprintf("%s: (%d,%d) Edited Motifs found using %d threads:(in %.2f sec, using %d KB): %d\n",
		engineName, l, d, threads, secs, kb, count)
	if _, err := f.WriteString(line); err != nil {
		return errors.Wrapf(err, "ioformat: append %s", logPath)
	}
	return nil
}
