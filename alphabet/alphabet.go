// Package alphabet encodes strings over a fixed domain (default
// {A,C,G,T}) into small integer codes, and back. The encoded
// representation is what the neighborhood enumerator and every engine
// operate on; only the io layer and the final decoded motif list deal
// in characters.
package alphabet

import (
	"fmt"
	"strings"
)

// Symbol is a code in [0, Size) for a concrete letter, or one of the
// two reserved scaffold symbols below.
type Symbol int8

const (
	// DNA is the default four-letter domain.
	DNA = "ACGT"
)

// Alphabet maps a fixed set of letters to codes 0..Size()-1 and back,
// plus the two scaffold symbols used during neighborhood enumeration.
type Alphabet struct {
	letters string
	index   [256]int8 // letter byte -> code, or -1
}

// New builds an Alphabet from a domain string such as "ACGT". Letters
// must be distinct upper-case ASCII; letters repeats or is empty,
// New panics, since the domain is configured once at startup and a
// bad domain is a programming error, not a runtime condition.
func New(letters string) *Alphabet {
	if letters == "" {
		panic("alphabet: empty domain")
	}
	a := &Alphabet{letters: letters}
	for i := range a.index {
		a.index[i] = -1
	}
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if a.index[c] != -1 {
			panic(fmt.Sprintf("alphabet: duplicate letter %q", c))
		}
		a.index[c] = int8(i)
	}
	return a
}

// Size returns σ, the number of concrete letters in the domain.
func (a *Alphabet) Size() int { return len(a.letters) }

// Wildcard is the reserved code denoting "matches any concrete
// letter", introduced by V2/V2m substitutions and insertions.
func (a *Alphabet) Wildcard() Symbol { return Symbol(a.Size()) }

// Deleted is the reserved transient scaffold code marking a position
// as deleted during enumeration; never appears past the base case.
func (a *Alphabet) Deleted() Symbol { return Symbol(a.Size() + 1) }

// Letter returns the concrete letter for a code in [0, Size()).
func (a *Alphabet) Letter(code Symbol) byte {
	return a.letters[code]
}

// Encode maps an input string to codes, upper-casing first and
// mapping U to T, per spec.md §3. Unrecognized characters map to 0.
func (a *Alphabet) Encode(s string) []Symbol {
	out := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'U' {
			c = 'T'
		}
		code := a.index[c]
		if code < 0 {
			code = 0
		}
		out[i] = Symbol(code)
	}
	return out
}

// Decode maps a slice of concrete codes back to a string. Decode
// panics if any symbol is WILDCARD, DELETED, or out of range — by the
// time a candidate reaches decoding every scaffold symbol must already
// have been resolved or stripped.
func (a *Alphabet) Decode(codes []Symbol) string {
	var b strings.Builder
	b.Grow(len(codes))
	for _, c := range codes {
		if int(c) < 0 || int(c) >= a.Size() {
			panic(fmt.Sprintf("alphabet: cannot decode non-concrete symbol %d", c))
		}
		b.WriteByte(a.Letter(c))
	}
	return b.String()
}
