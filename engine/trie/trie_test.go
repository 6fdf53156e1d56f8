package trie

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

func TestFastAndSimpleAgreeS1(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	seqs := encodeAll(a, "ACGT")
	fast, err := NewFast().Search(context.Background(), a, seqs, 3, 0)
	require.NoError(t, err)
	simple, err := NewSimple().Search(context.Background(), a, seqs, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"ACG", "CGT"}, fast.Motifs)
	require.Equal(t, fast.Motifs, simple.Motifs)
}

func TestFastAndSimpleAgreeAcrossRandomInstances(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	cases := []struct {
		seqs []string
		l, d int
	}{
		{[]string{"ACGTACGT", "ACGGACTT", "TCGTACGA"}, 4, 1},
		{[]string{"AAAA", "CCCC"}, 4, 1},
		{[]string{"AAAAA", "AAAAA"}, 5, 2},
		{[]string{"ACGTACGTACGT", "GGCATCGTACCT"}, 5, 2},
	}
	for _, c := range cases {
		seqs := encodeAll(a, c.seqs...)
		fast, err := NewFast().Search(context.Background(), a, seqs, c.l, c.d)
		require.NoError(t, err)
		simple, err := NewSimple().Search(context.Background(), a, seqs, c.l, c.d)
		require.NoError(t, err)
		require.Equal(t, fast.Motifs, simple.Motifs, "case %+v", c)
		for _, m := range fast.Motifs {
			for _, s := range c.seqs {
				found := false
				for i := 0; i < len(s) && !found; i++ {
					for j := i + 1; j <= len(s); j++ {
						if editdist.WithinDistance(m, s[i:j], c.d) {
							found = true
							break
						}
					}
				}
				require.True(t, found, "motif %s not within d of sequence %s", m, s)
			}
		}
	}
}

func TestEmptySequencesYieldEmptyResult(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	res, err := NewFast().Search(context.Background(), a, nil, 3, 1)
	require.NoError(t, err)
	require.Empty(t, res.Motifs)
	res, err = NewSimple().Search(context.Background(), a, nil, 3, 1)
	require.NoError(t, err)
	require.Empty(t, res.Motifs)
}

func TestConfigErrors(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	seqs := encodeAll(a, "ACGT")
	_, err := NewFast().Search(context.Background(), a, seqs, 0, 1)
	require.Error(t, err)
	_, err = NewSimple().Search(context.Background(), a, seqs, 3, -1)
	require.Error(t, err)
}

// A split must preserve the continuation of the letter it splits off:
// after an earlier wildcard insert covering every letter with one
// continuation, a later concrete insert claiming A with a different
// continuation must leave A answering for both.
func TestSplitPreservesNarrowedLetter(t *testing.T) {
	a := alphabet.New(alphabet.DNA)
	wildcard := a.Wildcard()
	n := newFastNode(a.Size())
	// depth0: wildcard covering everything, then concrete "CG" (depth1,2)
	n.insert([]alphabet.Symbol{wildcard, a.Encode("C")[0], a.Encode("G")[0]}, wildcard, a.Size(), 0)
	// depth0: concrete A, then concrete "TT" (different continuation)
	n.insert([]alphabet.Symbol{a.Encode("A")[0], a.Encode("T")[0], a.Encode("T")[0]}, wildcard, a.Size(), 0)

	var out []string
	traverseFast(n, a.Size(), 3, 0, make([]byte, 0, 3), a, func(s string) { out = append(out, s) })
	require.Contains(t, out, "ACG")
	require.Contains(t, out, "ATT")
}
