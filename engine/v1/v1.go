// Package v1 implements the EMS brute-counting engine (spec.md §4.2):
// a fresh set of concrete candidates per sequence, folded into global
// motif_counts/last_seq maps, with the final motif list being every
// candidate seen in all N sequences.
package v1

import (
	"context"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine"
	"github.com/aaw/ems/neighborhood"
	"golang.org/x/exp/slices"
)

// Engine is the V1 brute-force reference implementation. It exists to
// ground-truth the other engines and is only practical on small
// instances: complexity is Θ(N · |seq| · |neighborhood|).
type Engine struct{}

// New returns a V1 engine.
func New() *Engine { return &Engine{} }

// Search implements engine.Engine.
func (e *Engine) Search(ctx context.Context, alpha *alphabet.Alphabet, sequences [][]alphabet.Symbol, l, d int) (engine.Result, error) {
	if l <= 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "l must be > 0"}
	}
	if d < 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "d must be >= 0"}
	}
	if len(sequences) == 0 {
		return engine.Result{Motifs: []string{}}, nil
	}

	motifCounts := make(map[string]int)
	lastSeq := make(map[string]int)
	enum := neighborhood.New(alpha, neighborhood.Concrete)

	for i, seq := range sequences {
		seqID := i + 1
		candidates := make(map[string]struct{})

		neighborhood.ForEachTriple(len(seq), l, d, func(k, delta, sigma, insertions, start int) {
			x := seq[start : start+k]
			enum.Enumerate(x, l, delta, sigma, insertions, func(buf []alphabet.Symbol) {
				candidates[alpha.Decode(buf)] = struct{}{}
			})
		})

		for m := range candidates {
			if lastSeq[m] != seqID {
				lastSeq[m] = seqID
				motifCounts[m]++
			}
		}
	}

	n := len(sequences)
	out := make([]string, 0, len(motifCounts))
	for m, count := range motifCounts {
		if count == n {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return engine.Result{Motifs: out}, nil
}
