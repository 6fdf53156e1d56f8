package alphabet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := New(DNA)
	codes := a.Encode("acgt")
	require.Equal(t, "ACGT", a.Decode(codes))
}

func TestEncodeUtoT(t *testing.T) {
	a := New(DNA)
	codes := a.Encode("ACGU")
	require.Equal(t, "ACGT", a.Decode(codes))
}

func TestEncodeUnknownMapsToZero(t *testing.T) {
	a := New(DNA)
	codes := a.Encode("ACGN")
	require.Equal(t, Symbol(0), codes[3])
}

func TestWildcardAndDeletedAreDistinctFromLetters(t *testing.T) {
	a := New(DNA)
	require.Equal(t, Symbol(4), a.Wildcard())
	require.Equal(t, Symbol(5), a.Deleted())
	require.Equal(t, 4, a.Size())
}

func TestDecodePanicsOnScaffoldSymbol(t *testing.T) {
	a := New(DNA)
	require.Panics(t, func() {
		a.Decode([]Symbol{a.Wildcard()})
	})
}

func TestNewPanicsOnDuplicateLetters(t *testing.T) {
	require.Panics(t, func() {
		New("AA")
	})
}
