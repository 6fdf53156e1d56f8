// Package neighborhood implements the delta/sigma/alpha decomposition
// of edit-distance neighborhoods shared by every EMS engine (spec.md
// §4.1): given a substring x of length k and a fixed split of d edits
// into δ deletions, σ̃ substitutions and α insertions, enumerate every
// length-l string reachable from x by exactly that many edits of each
// kind.
//
// The enumerator mutates a single scratch buffer in place and
// backtracks rather than cloning strings at each recursive step, the
// same style levtrie's NFA simulation uses for its frame/state stack.
package neighborhood

import "github.com/aaw/ems/alphabet"

// Mode selects how substitutions and insertions are realized.
type Mode int

const (
	// Concrete branches over every letter at each substitution/
	// insertion site, so every emission is a fully instantiated
	// length-l string (used by V1 and V2P).
	Concrete Mode = iota
	// Compressed writes WILDCARD exactly once per substitution or
	// insertion site instead of branching (used by V2 and V2m); one
	// WILDCARD stands for all σ letters.
	Compressed
)

// Emit is called once per enumerated neighbor with the final,
// length-l buffer (DELETED markers already stripped). The buffer is
// reused across calls — Emit must copy anything it needs to retain.
type Emit func(buf []alphabet.Symbol)

// Enumerator enumerates (l,d)-neighborhoods of substrings over a
// fixed alphabet. Not safe for concurrent use; callers needing
// parallelism (V2P) construct one Enumerator per worker.
type Enumerator struct {
	alpha *alphabet.Alphabet
	mode  Mode

	buf     []alphabet.Symbol // scratch working buffer
	marked  []bool            // parallel to buf: inserted at this (δ,σ̃,α) call
	out     []alphabet.Symbol // reused output buffer, length l
	l       int
	emit    Emit
}

// New returns an Enumerator over the given alphabet operating in the
// given mode.
func New(a *alphabet.Alphabet, mode Mode) *Enumerator {
	return &Enumerator{alpha: a, mode: mode}
}

// Enumerate emits every length-l string reachable from x by exactly
// delta deletions, sigma substitutions and insertions insertions, per
// spec.md §4.1. x is not retained or mutated.
func (e *Enumerator) Enumerate(x []alphabet.Symbol, l, delta, sigma, insertions int, emit Emit) {
	maxLen := len(x) + insertions
	if cap(e.buf) < maxLen {
		e.buf = make([]alphabet.Symbol, maxLen)
		e.marked = make([]bool, maxLen)
	}
	e.buf = e.buf[:len(x)]
	copy(e.buf, x)
	e.marked = e.marked[:len(x)]
	for i := range e.marked {
		e.marked[i] = false
	}
	if cap(e.out) < l {
		e.out = make([]alphabet.Symbol, l)
	}
	e.out = e.out[:l]
	e.l = l
	e.emit = emit

	e.deletions(delta, sigma, insertions, 0)
}

// deletions is phase 1: choose `remaining` distinct, not-yet-deleted
// positions (scanning forward from start so each combination of
// positions is chosen exactly once) and mark them DELETED.
func (e *Enumerator) deletions(remaining, sigma, insertions, start int) {
	if remaining == 0 {
		e.substitutions(sigma, insertions, 0)
		return
	}
	deleted := e.alpha.Deleted()
	for pos := start; pos < len(e.buf); pos++ {
		if e.buf[pos] == deleted {
			continue
		}
		orig := e.buf[pos]
		e.buf[pos] = deleted
		e.deletions(remaining-1, sigma, insertions, pos+1)
		e.buf[pos] = orig
	}
}

// substitutions is phase 2: choose `remaining` distinct non-deleted
// positions and overwrite them, branching on every letter (the
// original one included, so a site may also stay unchanged) in
// Concrete mode or writing WILDCARD once in Compressed mode.
func (e *Enumerator) substitutions(remaining, insertions, start int) {
	if remaining == 0 {
		e.insertions(insertions)
		return
	}
	deleted := e.alpha.Deleted()
	for pos := start; pos < len(e.buf); pos++ {
		if e.buf[pos] == deleted {
			continue
		}
		orig := e.buf[pos]
		if e.mode == Compressed {
			e.buf[pos] = e.alpha.Wildcard()
			e.substitutions(remaining-1, insertions, pos+1)
		} else {
			for c := 0; c < e.alpha.Size(); c++ {
				e.buf[pos] = alphabet.Symbol(c)
				e.substitutions(remaining-1, insertions, pos+1)
			}
		}
		e.buf[pos] = orig
	}
}

// insertions is phase 3: choose `remaining` gap positions (between
// characters, and at both ends) and insert a symbol. An insertion may
// not be placed immediately before a symbol inserted earlier in this
// same phase, to avoid enumerating the same neighbor via different
// orderings (spec.md §4.1).
func (e *Enumerator) insertions(remaining int) {
	if remaining == 0 {
		e.finish()
		return
	}
	n := len(e.buf)
	for pos := 0; pos <= n; pos++ {
		if pos < n && e.marked[pos] {
			continue
		}
		if e.mode == Compressed {
			e.insertAt(pos, e.alpha.Wildcard())
			e.insertions(remaining - 1)
			e.removeAt(pos)
		} else {
			for c := 0; c < e.alpha.Size(); c++ {
				e.insertAt(pos, alphabet.Symbol(c))
				e.insertions(remaining - 1)
				e.removeAt(pos)
			}
		}
	}
}

// insertAt shifts buf[pos:] right by one and writes sym at pos,
// tracking it as inserted-this-phase in marked.
func (e *Enumerator) insertAt(pos int, sym alphabet.Symbol) {
	e.buf = e.buf[:len(e.buf)+1]
	e.marked = e.marked[:len(e.marked)+1]
	copy(e.buf[pos+1:], e.buf[pos:len(e.buf)-1])
	copy(e.marked[pos+1:], e.marked[pos:len(e.marked)-1])
	e.buf[pos] = sym
	e.marked[pos] = true
}

// removeAt undoes insertAt.
func (e *Enumerator) removeAt(pos int) {
	copy(e.buf[pos:], e.buf[pos+1:])
	copy(e.marked[pos:], e.marked[pos+1:])
	e.buf = e.buf[:len(e.buf)-1]
	e.marked = e.marked[:len(e.marked)-1]
}

// ForEachTriple drives the outer loop shared by every engine
// (spec.md §4.1): it iterates substring length k over
// [max(1,l-d), min(seqLen,l+d)], and for each k, every (δ,σ̃,α) split
// of d edits consistent with k-δ+α=l, and every substring start index,
// calling fn(k, delta, sigma, insertions, start) once per combination.
// Each δ fixes α = δ-(k-l) and σ̃ = d-δ-α; δ runs from max(0,k-l) to
// ⌊(d+k-l)/2⌋, which keeps α and σ̃ non-negative.
func ForEachTriple(seqLen, l, d int, fn func(k, delta, sigma, insertions, start int)) {
	kMin := l - d
	if kMin < 1 {
		kMin = 1
	}
	kMax := l + d
	if kMax > seqLen {
		kMax = seqLen
	}
	for k := kMin; k <= kMax; k++ {
		q := k - l
		deltaMin := 0
		if q > 0 {
			deltaMin = q
		}
		deltaMax := floorDiv(d+q, 2)
		for delta := deltaMin; delta <= deltaMax; delta++ {
			insertions := delta - q
			sigma := d - insertions - delta
			for start := 0; start+k <= seqLen; start++ {
				fn(k, delta, sigma, insertions, start)
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// finish strips DELETED positions and, if the resulting length is
// exactly l, emits the candidate.
func (e *Enumerator) finish() {
	deleted := e.alpha.Deleted()
	j := 0
	for _, s := range e.buf {
		if s == deleted {
			continue
		}
		if j >= e.l {
			return // too long even before counting the rest
		}
		e.out[j] = s
		j++
	}
	if j != e.l {
		return
	}
	e.emit(e.out)
}
