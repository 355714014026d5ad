// Package perrors defines the error taxonomy shared across the multiplier:
// a small set of kinds (spec §7), each surfaced as a *Error that wraps an
// optional underlying cause via github.com/pkg/errors.
package perrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which of the taxonomy's error categories occurred.
type Kind int

const (
	// IncompatibleSymbols: operands have differing symbol sets.
	IncompatibleSymbols Kind = iota
	// Cancelled: the user requested abort via the cancellation flag.
	Cancelled
	// CoefficientError: a coefficient operation (e.g. a big-int allocation)
	// failed.
	CoefficientError
	// InternalInvariantViolated: a debug-build-only check failed.
	InternalInvariantViolated
)

func (k Kind) String() string {
	switch k {
	case IncompatibleSymbols:
		return "incompatible_symbols"
	case Cancelled:
		return "cancelled"
	case CoefficientError:
		return "coefficient_error"
	case InternalInvariantViolated:
		return "internal_invariant_violated"
	default:
		return "unknown"
	}
}

// Error is the concrete error type surfaced by piranha.Multiply and its
// collaborators. For CoefficientError it annotates which worker and
// term-pair indices triggered the failure, per spec §7.
type Error struct {
	Kind       Kind
	Worker     int
	PairA      int
	PairB      int
	HasPair    bool
	underlying error
}

func (e *Error) Error() string {
	if e.HasPair {
		return fmt.Sprintf("piranha: %s (worker %d, pair (%d,%d)): %v", e.Kind, e.Worker, e.PairA, e.PairB, e.underlying)
	}
	if e.underlying != nil {
		return fmt.Sprintf("piranha: %s: %v", e.Kind, e.underlying)
	}
	return fmt.Sprintf("piranha: %s", e.Kind)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.underlying }

// New builds a bare Error of the given kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Wrap builds an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, underlying: errors.WithStack(cause)}
}

// WithPair annotates a CoefficientError with the worker and term-pair
// indices that triggered it.
func (e *Error) WithPair(worker, i, j int) *Error {
	e.Worker = worker
	e.PairA = i
	e.PairB = j
	e.HasPair = true
	return e
}

// Is reports whether target is an *Error of the same Kind, supporting
// errors.Is(err, perrors.New(perrors.Cancelled)) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
