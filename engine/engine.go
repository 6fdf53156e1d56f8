// Package engine defines the interface shared by the four EMS search
// engines (V1, V2, V2m, V2P) and the typed errors they surface at
// their boundary (spec.md §7).
package engine

import (
	"context"

	"github.com/aaw/ems/alphabet"
)

// Engine searches a set of encoded sequences for motifs of length l
// within edit distance d of some substring of every sequence
// (spec.md §1). Implementations run to completion or failure; there
// is no cancellation contract beyond ctx being honored where the
// engine is already concurrent (V2P).
type Engine interface {
	// Search returns the sorted, deduplicated list of decoded motifs
	// common to every sequence, per spec.md §8 property 4.
	Search(ctx context.Context, alpha *alphabet.Alphabet, sequences [][]alphabet.Symbol, l, d int) (Result, error)
}

// Result is the outcome of a completed search.
type Result struct {
	// Motifs is the final, sorted, deduplicated list of decoded
	// motifs. Empty (never nil) if no motif is common to every
	// sequence, including after early termination (spec.md §8
	// property 8).
	Motifs []string
}

// ConfigError reports an invalid (l, d) or version configuration
// (spec.md §7, "Configuration" error kind).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "ems: configuration: " + e.Msg }

// ExecutionError wraps a failure encountered while running a search
// (out-of-memory, worker failure, etc — spec.md §7, "Execution" error
// kind). The underlying cause is available via errors.Unwrap.
type ExecutionError struct {
	Msg   string
	Cause error
}

func (e *ExecutionError) Error() string {
	if e.Cause == nil {
		return "ems: execution: " + e.Msg
	}
	return "ems: execution: " + e.Msg + ": " + e.Cause.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Cause }
