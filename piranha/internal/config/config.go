// Package config holds the explicit, immutable tuning knobs threaded
// through the driver (spec §6, §9 "no hidden mutable singleton"). A
// package-level DefaultConfig gives the convenience accessor the spec asks
// for without introducing mutable process-wide state on the hot path.
package config

import (
	"runtime"

	"github.com/piranha-go/piranha/piranha/term"
)

// Config collects every tunable the multiplier consults.
type Config struct {
	// ThreadCount is the maximum number of worker goroutines. 0 means
	// "use runtime.GOMAXPROCS(0)".
	ThreadCount int

	// MinParallelWork is the |A|*|B| threshold below which the driver runs
	// serially instead of spawning workers.
	MinParallelWork int

	// EstimatorSamples is the number of random term-pairs sampled to
	// predict output cardinality.
	EstimatorSamples int

	// MaxLoadFactor is the accumulator's load threshold before resizing.
	MaxLoadFactor float64

	// DensityThreshold is the estimator density at or below which the
	// driver picks the row-band (dense) partition strategy instead of
	// hash-band.
	DensityThreshold float64

	// Seed seeds the estimator's pseudo-random sampler, for reproducible
	// tests (spec §4.4).
	Seed uint64

	// Filter optionally rejects a term-pair product before it reaches the
	// accumulator. A nil Filter accepts everything.
	Filter term.Filter
}

// Option mutates a Config being built.
type Option func(*Config)

// WithThreadCount overrides the worker count. 0 selects GOMAXPROCS.
func WithThreadCount(n int) Option { return func(c *Config) { c.ThreadCount = n } }

// WithMinParallelWork overrides the serial-fallback threshold.
func WithMinParallelWork(n int) Option { return func(c *Config) { c.MinParallelWork = n } }

// WithEstimatorSamples overrides the sample count used for cardinality
// estimation.
func WithEstimatorSamples(n int) Option { return func(c *Config) { c.EstimatorSamples = n } }

// WithMaxLoadFactor overrides the accumulator resize threshold.
func WithMaxLoadFactor(f float64) Option { return func(c *Config) { c.MaxLoadFactor = f } }

// WithDensityThreshold overrides the hash-band/row-band selection cutoff.
func WithDensityThreshold(f float64) Option { return func(c *Config) { c.DensityThreshold = f } }

// WithSeed overrides the estimator's PRNG seed.
func WithSeed(seed uint64) Option { return func(c *Config) { c.Seed = seed } }

// WithFilter installs a predicate that can discard a term-pair product
// before it reaches the accumulator.
func WithFilter(f term.Filter) Option { return func(c *Config) { c.Filter = f } }

// Default returns the library's default configuration. Each call returns a
// fresh value; there is no shared mutable singleton.
func Default() Config {
	return Config{
		ThreadCount:      0,
		MinParallelWork:  1 << 14,
		EstimatorSamples: 256,
		MaxLoadFactor:    0.5,
		DensityThreshold: 0.6,
		Seed:             0x9e3779b97f4a7c15,
	}
}

// New builds a Config starting from Default and applying opts in order.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ResolvedThreadCount returns ThreadCount, or GOMAXPROCS(0) when it is 0.
func (c Config) ResolvedThreadCount() int {
	if c.ThreadCount > 0 {
		return c.ThreadCount
	}
	return runtime.GOMAXPROCS(0)
}
