// Package piranha is the public entry point of the sparse series
// multiplier (spec §1): a single operation, Multiply(a, b) -> c, built on
// top of the term/monomial/coefficient/symbol/series collaborators and the
// internal accumulator/kernel/estimator/partition/driver subsystem.
package piranha

import (
	"context"

	"github.com/piranha-go/piranha/piranha/internal/config"
	"github.com/piranha-go/piranha/piranha/internal/driver"
	"github.com/piranha-go/piranha/piranha/internal/perrors"
	"github.com/piranha-go/piranha/piranha/series"
	"github.com/piranha-go/piranha/piranha/term"
)

// Config collects the tunables enumerated in spec §6: thread_count,
// min_parallel_work, estimator_samples, max_load_factor, and filter.
type Config = config.Config

// Option mutates a Config under construction.
type Option = config.Option

// WithThreadCount overrides the worker count (0 = auto).
func WithThreadCount(n int) Option { return config.WithThreadCount(n) }

// WithMinParallelWork overrides the serial-fallback threshold.
func WithMinParallelWork(n int) Option { return config.WithMinParallelWork(n) }

// WithEstimatorSamples overrides the cardinality-estimation sample count.
func WithEstimatorSamples(n int) Option { return config.WithEstimatorSamples(n) }

// WithMaxLoadFactor overrides the accumulator resize threshold.
func WithMaxLoadFactor(f float64) Option { return config.WithMaxLoadFactor(f) }

// WithDensityThreshold overrides the hash-band/row-band selection cutoff.
func WithDensityThreshold(f float64) Option { return config.WithDensityThreshold(f) }

// WithSeed overrides the estimator's PRNG seed (for reproducible tests).
func WithSeed(seed uint64) Option { return config.WithSeed(seed) }

// WithFilter installs a predicate that can discard a term-pair product
// before it reaches the accumulator.
func WithFilter(f term.Filter) Option { return config.WithFilter(f) }

// DefaultConfig returns the library's default tuning. Each call returns a
// fresh value — there is no hidden mutable process-wide singleton on the
// hot path (spec §9).
func DefaultConfig() Config { return config.Default() }

// NewConfig builds a Config from DefaultConfig plus the given options.
func NewConfig(opts ...Option) Config { return config.New(opts...) }

// ErrorKind names a category from the error taxonomy of spec §7.
type ErrorKind = perrors.Kind

const (
	IncompatibleSymbols      = perrors.IncompatibleSymbols
	Cancelled                = perrors.Cancelled
	CoefficientErrorKind     = perrors.CoefficientError
	InternalInvariantViolated = perrors.InternalInvariantViolated
)

// Error is the concrete error type multiply returns; use errors.As to
// recover the Kind and (for CoefficientError) the triggering worker and
// term-pair indices.
type Error = perrors.Error

// Handle wraps the cancellation flag of one multiplication (spec §5
// "Cancellation"). It is returned only once that multiplication has
// finished, so it does not abort the call that produced it.
type Handle = driver.Handle

// Multiply computes a * b (spec §4.5). It returns IncompatibleSymbols if
// the operands' symbol sets differ, an empty series if either operand is
// empty, and otherwise the product series with every invariant of spec §3
// upheld (non-zero coefficients, cardinality <= |a|*|b|).
func Multiply(a, b series.Series, opts ...Option) (series.Series, error) {
	return driver.Multiply(nil, a, b, config.New(opts...))
}

// MultiplyContext is Multiply with a context.Context whose cancellation
// additionally aborts the operation (a Go-idiomatic supplement to the
// flag-based cancellation of spec §5; see SPEC_FULL.md §5).
func MultiplyContext(ctx context.Context, a, b series.Series, opts ...Option) (series.Series, error) {
	return driver.Multiply(ctx, a, b, config.New(opts...))
}

// MultiplyCancellable is MultiplyContext but also returns the run's Handle.
// The Handle is returned together with the result, after the operation has
// completed; cancelling ctx is what aborts the operation while it runs.
func MultiplyCancellable(ctx context.Context, a, b series.Series, opts ...Option) (series.Series, Handle, error) {
	return driver.MultiplyCancellable(ctx, a, b, config.New(opts...))
}
