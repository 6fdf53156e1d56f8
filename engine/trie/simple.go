package trie

import (
	"context"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine"
	"github.com/aaw/ems/neighborhood"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/slices"
)

// simpleChild pairs a sharing mask with the physical node it leads
// to. simpleNode keeps these in a plain slice rather than the Fast
// variant's sigma-wide array: cheaper to allocate per node, more
// expensive to search on every letter.
type simpleChild struct {
	mask *bitset.BitSet
	node *simpleNode
}

// simpleNode is a V2m ("Simple") trie node.
type simpleNode struct {
	children []*simpleChild
}

func newSimpleNode() *simpleNode {
	return &simpleNode{}
}

func (n *simpleNode) lookup(c int) *simpleChild {
	for _, ch := range n.children {
		if ch.mask.Test(uint(c)) {
			return ch
		}
	}
	return nil
}

func (n *simpleNode) insert(motif []alphabet.Symbol, wildcard alphabet.Symbol, sigma, depth int) {
	if depth == len(motif) {
		return
	}
	sym := motif[depth]
	if sym == wildcard {
		n.insertWildcard(motif, wildcard, sigma, depth)
		return
	}
	c := int(sym)
	existing := n.lookup(c)
	if existing == nil {
		child := newSimpleNode()
		n.children = append(n.children, &simpleChild{mask: singleBit(sigma, c), node: child})
		child.insert(motif, wildcard, sigma, depth+1)
		return
	}
	if existing.mask.Count() == 1 {
		existing.node.insert(motif, wildcard, sigma, depth+1)
		return
	}
	// Deep-copy existing's subtree so the new suffix does not leak
	// into the letters that stay with existing.
	var clone func(src *simpleNode) *simpleNode
	clone = func(src *simpleNode) *simpleNode {
		dst := &simpleNode{}
		for _, ch := range src.children {
			dst.children = append(dst.children, &simpleChild{mask: ch.mask, node: clone(ch.node)})
		}
		return dst
	}
	split := newSimpleNode()
	split.children = clone(existing.node).children
	existing.mask = existing.mask.Clone().Clear(uint(c))
	n.children = append(n.children, &simpleChild{mask: singleBit(sigma, c), node: split})
	split.insert(motif, wildcard, sigma, depth+1)
}

func (n *simpleNode) insertWildcard(motif []alphabet.Symbol, wildcard alphabet.Symbol, sigma, depth int) {
	covered := bitset.New(uint(sigma))
	for _, ch := range n.children {
		covered.InPlaceUnion(ch.mask)
		ch.node.insert(motif, wildcard, sigma, depth+1)
	}
	remaining := fullMask(sigma).Difference(covered)
	if !remaining.Any() {
		return
	}
	nc := newSimpleNode()
	n.children = append(n.children, &simpleChild{mask: remaining, node: nc})
	nc.insert(motif, wildcard, sigma, depth+1)
}

// intersectSimple is the general pairwise-product form of intersect
// (spec.md §4.3): every pair of children, not just same-slot pairs,
// is a candidate since Simple's list carries no positional meaning.
func intersectSimple(a, b *simpleNode, l, depth int) *simpleNode {
	if depth == l {
		return newSimpleNode()
	}
	result := newSimpleNode()
	for _, ac := range a.children {
		for _, bc := range b.children {
			common := ac.mask.Intersection(bc.mask)
			if !common.Any() {
				continue
			}
			child := intersectSimple(ac.node, bc.node, l, depth+1)
			if child == nil {
				continue
			}
			result.children = append(result.children, &simpleChild{mask: common, node: child})
		}
	}
	if len(result.children) == 0 {
		return nil
	}
	return result
}

func traverseSimple(n *simpleNode, sigma, l, depth int, buf []byte, alpha *alphabet.Alphabet, emit func(string)) {
	if depth == l {
		emit(string(buf))
		return
	}
	for c := 0; c < sigma; c++ {
		target := n.lookup(c)
		if target == nil {
			continue
		}
		traverseSimple(target.node, sigma, l, depth+1, append(buf, alpha.Letter(alphabet.Symbol(c))), alpha, emit)
	}
}

// SimpleEngine is the V2m list-based sharing-mask trie engine.
type SimpleEngine struct{}

// NewSimple returns a V2m engine.
func NewSimple() *SimpleEngine { return &SimpleEngine{} }

// Search implements engine.Engine.
func (e *SimpleEngine) Search(ctx context.Context, alpha *alphabet.Alphabet, sequences [][]alphabet.Symbol, l, d int) (engine.Result, error) {
	if l <= 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "l must be > 0"}
	}
	if d < 0 {
		return engine.Result{}, &engine.ConfigError{Msg: "d must be >= 0"}
	}
	if len(sequences) == 0 {
		return engine.Result{Motifs: []string{}}, nil
	}

	sigma := alpha.Size()
	wildcard := alpha.Wildcard()
	enum := neighborhood.New(alpha, neighborhood.Compressed)

	buildTree := func(seq []alphabet.Symbol) *simpleNode {
		root := newSimpleNode()
		neighborhood.ForEachTriple(len(seq), l, d, func(k, delta, sig, insertions, start int) {
			x := seq[start : start+k]
			enum.Enumerate(x, l, delta, sig, insertions, func(buf []alphabet.Symbol) {
				root.insert(buf, wildcard, sigma, 0)
			})
		})
		return root
	}

	main := buildTree(sequences[0])
	for i := 1; i < len(sequences); i++ {
		tmp := buildTree(sequences[i])
		main = intersectSimple(main, tmp, l, 0)
		if main == nil {
			return engine.Result{Motifs: []string{}}, nil
		}
	}

	out := make([]string, 0)
	traverseSimple(main, sigma, l, 0, make([]byte, 0, l), alpha, func(s string) {
		out = append(out, s)
	})
	slices.Sort(out)
	return engine.Result{Motifs: out}, nil
}
