// Package parallel implements the V2P bit-packed parallel sort-merge
// engine (spec.md §4.4): candidates are packed into integer keys,
// enumerated by sharded worker tasks, sorted and deduped per shard,
// then folded into the running result by a binary union reduction
// followed by a sorted-array intersect against the prior sequence.
package parallel

import (
	"context"
	"math/rand"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine"
	"github.com/aaw/ems/neighborhood"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// shuffleSeed fixes the shard-assignment order so runs are
// reproducible regardless of worker count (spec.md §4.4, §8 property
// 7): only the partitioning changes across worker counts, never the
// final sorted result.
const shuffleSeed = 42

type workItem struct {
	k, delta, sigma, insertions, start int
}

func collectWorkItems(seqLen, l, d int) []workItem {
	var items []workItem
	neighborhood.ForEachTriple(seqLen, l, d, func(k, delta, sigma, insertions, start int) {
		items = append(items, workItem{k, delta, sigma, insertions, start})
	})
	return items
}

func shardItems(items []workItem, shards int) [][]workItem {
	n := len(items)
	if n == 0 {
		return nil
	}
	r := rand.New(rand.NewSource(shuffleSeed))
	r.Shuffle(n, func(i, j int) { items[i], items[j] = items[j], items[i] })

	if shards < 1 {
		shards = 1
	}
	if shards > n {
		shards = n
	}
	out := make([][]workItem, 0, shards)
	base, rem := n/shards, n%shards
	idx := 0
	for s := 0; s < shards; s++ {
		size := base
		if s < rem {
			size++
		}
		out = append(out, items[idx:idx+size])
		idx += size
	}
	return out
}

// pack encodes the first l symbols of a candidate into an unsigned
// integer, 2 bits per letter, most significant letter first (spec.md
// §3 "Packed motif key").
func pack(sym []alphabet.Symbol, l int) uint64 {
	var key uint64
	for i := 0; i < l; i++ {
		key |= uint64(sym[i]&0x3) << uint(2*(l-1-i))
	}
	return key
}

func unpack(key uint64, l int) []alphabet.Symbol {
	out := make([]alphabet.Symbol, l)
	for i := 0; i < l; i++ {
		out[i] = alphabet.Symbol((key >> uint(2*(l-1-i))) & 0x3)
	}
	return out
}

func mergeUnion(a, b []uint64) []uint64 {
	out := make([]uint64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func reduceUnion(shards [][]uint64) []uint64 {
	level := shards
	for len(level) > 1 {
		next := make([][]uint64, 0, (len(level)+1)/2)
		i := 0
		for ; i+1 < len(level); i += 2 {
			next = append(next, mergeUnion(level[i], level[i+1]))
		}
		if i < len(level) {
			next = append(next, level[i])
		}
		level = next
	}
	if len(level) == 0 {
		return nil
	}
	return level[0]
}

func intersectSorted(a, b []uint64) []uint64 {
	out := make([]uint64, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Engine is the V2P bit-packed parallel sort-merge engine.
type Engine struct {
	// Workers is the number of shard tasks to run per sequence step.
	// A value <= 0 falls back to 1.
	Workers int
}

// New returns a V2P engine configured for the given worker count.
func New(workers int) *Engine { return &Engine{Workers: workers} }

// Search implements engine.Engine.
func (e *Engine) Search(ctx context.Context, alpha *alphabet.Alphabet, sequences [][]alphabet.Symbol, l, d int) (engine.Result, error) {
	if l <= 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "l must be > 0"}
	}
	if d < 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "d must be >= 0"}
	}
	if l > 32 {
		return engine.Result{}, &engine.ConfigError{Msg: "l must be <= 32 to pack into a uint64 key"}
	}
	if alpha.Size() > 4 {
		return engine.Result{}, &engine.ConfigError{Msg: "packed keys only support alphabets of size <= 4"}
	}
	if len(sequences) == 0 {
		return engine.Result{Motifs: []string{}}, nil
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}

	buildUnion := func(seq []alphabet.Symbol) ([]uint64, error) {
		shards := shardItems(collectWorkItems(len(seq), l, d), workers)
		results := make([][]uint64, len(shards))
		g, gctx := errgroup.WithContext(ctx)
		for si, shard := range shards {
			si, shard := si, shard
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				enum := neighborhood.New(alpha, neighborhood.Concrete)
				var buf []uint64
				for _, it := range shard {
					x := seq[it.start : it.start+it.k]
					enum.Enumerate(x, l, it.delta, it.sigma, it.insertions, func(sym []alphabet.Symbol) {
						buf = append(buf, pack(sym, l))
					})
				}
				slices.Sort(buf)
				results[si] = slices.Compact(buf)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, &engine.ExecutionError{Msg: "shard enumeration failed", Cause: err}
		}
		return reduceUnion(results), nil
	}

	mainArray, err := buildUnion(sequences[0])
	if err != nil {
		return engine.Result{}, err
	}

	for i := 1; i < len(sequences); i++ {
		union, err := buildUnion(sequences[i])
		if err != nil {
			return engine.Result{}, err
		}
		mainArray = intersectSorted(mainArray, union)
		if len(mainArray) == 0 {
			return engine.Result{Motifs: []string{}}, nil
		}
	}

	out := make([]string, 0, len(mainArray))
	for _, key := range mainArray {
		out = append(out, alpha.Decode(unpack(key, l)))
	}
	return engine.Result{Motifs: out}, nil
}
