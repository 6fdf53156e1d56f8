package v1

import (
	"context"
	"testing"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/editdist"
	"github.com/stretchr/testify/require"
)

func encodeAll(a *alphabet.Alphabet, seqs ...string) [][]alphabet.Symbol {
	out := make([][]alphabet.Symbol, len(seqs))
	for i, s := range seqs {
		out[i] = a.Encode(s)
	}
	return out
}

// S1: sigma=4, l=3, d=0, one sequence ACGT. Expected motifs {ACG, CGT}.
func TestS1SingleSequenceExactMotifs(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := New().Search(context.Background(), a, encodeAll(a, "ACGT"), 3, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"ACG", "CGT"}, res.Motifs)
}

// S3: l=4, d=1, two sequences sharing no motif even with edit slack.
func TestS3NoSharedMotifIsEmpty(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := New().Search(context.Background(), a, encodeAll(a, "AAAA", "CCCC"), 4, 1)
	require.NoError(t, err)
	require.Empty(t, res.Motifs)
}

// S6: l=5, d=2, sequences [AAAAA, AAAAA]. Every output motif must be
// within distance 2 of AAAAA, and soundness (spec.md §8 property 2)
// holds against every input sequence independently.
func TestS6SoundnessAgainstConsensus(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := New().Search(context.Background(), a, encodeAll(a, "AAAAA", "AAAAA"), 5, 2)
	require.NoError(t, err)
	require.NotEmpty(t, res.Motifs)
	for _, m := range res.Motifs {
		require.LessOrEqual(t, editdist.Distance(m, "AAAAA"), 2)
	}
}

func TestSortednessNoDuplicates(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := New().Search(context.Background(), a, encodeAll(a, "ACG", "CGT"), 3, 1)
	require.NoError(t, err)
	seen := map[string]bool{}
	for i := 1; i < len(res.Motifs); i++ {
		require.Less(t, res.Motifs[i-1], res.Motifs[i])
	}
	for _, m := range res.Motifs {
		require.False(t, seen[m])
		seen[m] = true
	}
}

func TestEmptyInputYieldsEmptyResult(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := New().Search(context.Background(), a, nil, 3, 1)
	require.NoError(t, err)
	require.Empty(t, res.Motifs)
}

func TestConfigErrors(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	_, err := New().Search(context.Background(), a, encodeAll(a, "ACGT"), 0, 1)
	require.Error(t, err)
	_, err = New().Search(context.Background(), a, encodeAll(a, "ACGT"), 3, -1)
	require.Error(t, err)
}
