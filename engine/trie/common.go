// Package trie implements the V2 (Fast) and V2m (Simple) sharing-mask
// trie engines (spec.md §4.3): candidate motifs are inserted into a
// trie where a single edge can represent many concrete letters at
// once via a sharing mask, and successive sequences are folded in by
// intersecting tries rather than re-walking every candidate string.
//
// Fast stores children in a fixed array indexed by letter, giving O(1)
// lookup and split; Simple stores children in a list scanned linearly,
// trading lookup speed for simpler insertion bookkeeping. Both
// maintain the same invariant — sibling sharing masks are pairwise
// disjoint and their union is exactly the set of letters inserted at
// that edge — so they always agree on the final motif set; this is
// checked directly by the cross-engine equivalence tests.
package trie

import "github.com/bits-and-blooms/bitset"

// singleBit returns a width-sigma mask with only bit c set.
func singleBit(sigma, c int) *bitset.BitSet {
	return bitset.New(uint(sigma)).Set(uint(c))
}

// fullMask returns a width-sigma mask with every bit set.
func fullMask(sigma int) *bitset.BitSet {
	b := bitset.New(uint(sigma))
	for c := 0; c < sigma; c++ {
		b.Set(uint(c))
	}
	return b
}
