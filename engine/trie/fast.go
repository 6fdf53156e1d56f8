package trie

import (
	"context"

	"github.com/aaw/ems/alphabet"
	"github.com/aaw/ems/engine"
	"github.com/aaw/ems/neighborhood"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/slices"
)

// fastNode is a V2 ("Fast") trie node: children are stored in a fixed
// array of sigma slots, so looking up the child reachable on a given
// letter is O(1) and a split only ever touches one slot.
type fastNode struct {
	children []*fastNode
	mask     *bitset.BitSet
}

func newFastNode(sigma int) *fastNode {
	return &fastNode{children: make([]*fastNode, sigma)}
}

// insert walks motif into the trie rooted at n, creating, reusing or
// splitting children as needed (spec.md §4.3 "Insert").
func (n *fastNode) insert(motif []alphabet.Symbol, wildcard alphabet.Symbol, sigma, depth int) {
	if depth == len(motif) {
		return
	}
	sym := motif[depth]
	if sym == wildcard {
		n.insertWildcard(motif, wildcard, sigma, depth)
		return
	}
	c := int(sym)
	existing := n.children[c]
	if existing == nil {
		child := newFastNode(sigma)
		child.mask = singleBit(sigma, c)
		n.children[c] = child
		child.insert(motif, wildcard, sigma, depth+1)
		return
	}
	if existing.mask.Count() == 1 {
		existing.insert(motif, wildcard, sigma, depth+1)
		return
	}
	// existing covers c plus other letters: split c off into its own
	// node, carrying forward a deep copy of existing's subtree so
	// letter c keeps access to whatever was already reachable through
	// it and the new suffix does not leak into the other letters.
	var clone func(src *fastNode) *fastNode
	clone = func(src *fastNode) *fastNode {
		dst := &fastNode{children: make([]*fastNode, sigma), mask: src.mask}
		seen := map[*fastNode]*fastNode{}
		for i, ch := range src.children {
			if ch != nil && seen[ch] == nil {
				seen[ch] = clone(ch)
			}
			dst.children[i] = seen[ch]
		}
		return dst
	}
	split := newFastNode(sigma)
	split.mask = singleBit(sigma, c)
	split.children = clone(existing).children
	existing.mask = existing.mask.Clone().Clear(uint(c))
	n.children[c] = split
	split.insert(motif, wildcard, sigma, depth+1)
}

func (n *fastNode) insertWildcard(motif []alphabet.Symbol, wildcard alphabet.Symbol, sigma, depth int) {
	covered := bitset.New(uint(sigma))
	visited := map[*fastNode]bool{}
	for c := 0; c < sigma; c++ {
		child := n.children[c]
		if child == nil || visited[child] {
			continue
		}
		visited[child] = true
		covered.InPlaceUnion(child.mask)
		child.insert(motif, wildcard, sigma, depth+1)
	}
	remaining := fullMask(sigma).Difference(covered)
	if !remaining.Any() {
		return
	}
	nc := newFastNode(sigma)
	nc.mask = remaining
	for c := 0; c < sigma; c++ {
		if remaining.Test(uint(c)) {
			n.children[c] = nc
		}
	}
	nc.insert(motif, wildcard, sigma, depth+1)
}

// intersectFast folds tmp into main one sequence at a time (spec.md
// §4.3 "Intersect"), returning nil once no path survives.
func intersectFast(a, b *fastNode, sigma, l, depth int) *fastNode {
	if depth == l {
		return newFastNode(sigma)
	}
	result := newFastNode(sigma)
	processed := make([]bool, sigma)
	any := false
	for c := 0; c < sigma; c++ {
		if processed[c] {
			continue
		}
		ac, bc := a.children[c], b.children[c]
		if ac == nil || bc == nil {
			processed[c] = true
			continue
		}
		common := ac.mask.Intersection(bc.mask)
		for bit := uint(0); bit < uint(sigma); bit++ {
			if common.Test(bit) {
				processed[bit] = true
			}
		}
		child := intersectFast(ac, bc, sigma, l, depth+1)
		if child == nil {
			continue
		}
		child.mask = common
		for bit := uint(0); bit < uint(sigma); bit++ {
			if common.Test(bit) {
				result.children[bit] = child
			}
		}
		any = true
	}
	if !any {
		return nil
	}
	return result
}

func traverseFast(n *fastNode, sigma, l, depth int, buf []byte, alpha *alphabet.Alphabet, emit func(string)) {
	if depth == l {
		emit(string(buf))
		return
	}
	for c := 0; c < sigma; c++ {
		child := n.children[c]
		if child == nil {
			continue
		}
		traverseFast(child, sigma, l, depth+1, append(buf, alpha.Letter(alphabet.Symbol(c))), alpha, emit)
	}
}

// FastEngine is the V2 array-indexed sharing-mask trie engine.
type FastEngine struct{}

// NewFast returns a V2 engine.
func NewFast() *FastEngine { return &FastEngine{} }

// Search implements engine.Engine.
func (e *FastEngine) Search(ctx context.Context, alpha *alphabet.Alphabet, sequences [][]alphabet.Symbol, l, d int) (engine.Result, error) {
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

	buildTree := func(seq []alphabet.Symbol) *fastNode {
		root := newFastNode(sigma)
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
		main = intersectFast(main, tmp, sigma, l, 0)
		if main == nil {
			return engine.Result{Motifs: []string{}}, nil
		}
	}

	out := make([]string, 0)
	traverseFast(main, sigma, l, 0, make([]byte, 0, l), alpha, func(s string) {
		out = append(out, s)
	})
	slices.Sort(out)
	return engine.Result{Motifs: out}, nil
}
