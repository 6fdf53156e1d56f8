package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine/v1"
	"github.com/aaw/ems/ioformat"
	"github.com/stretchr/testify/require"
)

func TestSelectEngineRejectsUnknownVersion(t *testing.T) {
	_, _, err := selectEngine("3", 1)
	require.Error(t, err)
}

func TestSelectEngineKnownVersions(t *testing.T) {
	for _, v := range []string{"1", "2", "2m", "2p"} {
		eng, name, err := selectEngine(v, 2)
		require.NoError(t, err)
		require.NotNil(t, eng)
		require.NotEmpty(t, name)
	}
}

// End-to-end: drive the pieces cmd/ems wires together (read, search,
// write, log) exactly as run() does, without re-parsing flags.
func TestEndToEndReadSearchWriteLog(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "case1.txt")
	require.NoError(t, os.WriteFile(input, []byte(">seq1\nACGT\n>seq2\nACGT\n"), 0o644))

	a := alphabet.New(alphabet.DNA)
	read, err := ioformat.ReadSequences(a, input)
	require.NoError(t, err)

	eng := v1.New()
	res, err := eng.Search(context.Background(), a, read.Sequences, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"ACG", "CGT"}, res.Motifs)

	outPath, err := ioformat.OutputPath(input, "v1", 3, 0)
	require.NoError(t, err)
	require.NoError(t, ioformat.WriteMotifs(outPath, res.Motifs, read.Consensus, 3))
	require.NoError(t, ioformat.AppendTimeMemoryLog(input, "v1", 3, 0, 1, 0.01, 1, len(res.Motifs)))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "ACG N/A\nCGT N/A\n", string(data))

	logData, err := os.ReadFile(filepath.Join(dir, "output", "emsTimeMemory.log"))
	require.NoError(t, err)
	require.True(t, bytes.Contains(logData, []byte("v1: (3,0)")))
}
