// Package driver orchestrates one multiplication end to end: align/check,
// estimate, choose a partition strategy, spawn workers, merge, and return
// (spec §4.5). It owns the state machine (spec §4.6) and the concurrency
// and error-propagation rules of spec §5/§7.
package driver

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/piranha-go/piranha/piranha/internal/config"
	"github.com/piranha-go/piranha/piranha/internal/estimator"
	"github.com/piranha-go/piranha/piranha/internal/kernel"
	"github.com/piranha-go/piranha/piranha/internal/partition"
	"github.com/piranha-go/piranha/piranha/internal/perrors"
	"github.com/piranha-go/piranha/piranha/series"
)

// State names a node of the driver's state machine (spec §4.6): states
// transition linearly, Idle -> Estimating -> Scheduling -> Running ->
// Merging -> Done, with any state able to move to Failed, and
// Running -> Cancelled -> Failed(Cancelled) on user cancellation.
type State int

const (
	Idle State = iota
	Estimating
	Scheduling
	Running
	Merging
	Done
	Cancelled
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Estimating:
		return "estimating"
	case Scheduling:
		return "scheduling"
	case Running:
		return "running"
	case Merging:
		return "merging"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle wraps the cancellation flag of one multiplication (spec §5
// "Cancellation"). MultiplyCancellable returns it only after that
// multiplication has finished, so Cancel does not abort the call that
// produced it; in-flight cancellation is driven by the context passed to
// Multiply or MultiplyCancellable. The zero Handle's Cancel is a safe no-op.
type Handle struct {
	flag *atomic.Bool
}

// Cancel sets the shared cancellation flag polled by every worker.
func (h Handle) Cancel() {
	if h.flag != nil {
		h.flag.Store(true)
	}
}

// Multiply implements the public multiply(a, b) -> c entry point (spec
// §1, §4.5).
func Multiply(ctx context.Context, a, b series.Series, cfg config.Config) (series.Series, error) {
	out, _, err := multiply(ctx, a, b, cfg)
	return out, err
}

// MultiplyCancellable is like Multiply but also returns the run's Handle.
// The Handle is returned together with the result, after the operation has
// completed; cancelling ctx is what aborts the operation while it runs.
func MultiplyCancellable(ctx context.Context, a, b series.Series, cfg config.Config) (series.Series, Handle, error) {
	return multiply(ctx, a, b, cfg)
}

func multiply(ctx context.Context, a, b series.Series, cfg config.Config) (series.Series, Handle, error) {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()
	state := Idle

	// 1. Align / compatibility check (spec §4.5 step 1).
	state = Estimating
	if !a.Symbols().Equal(b.Symbols()) {
		logger.Warn().Str("state", state.String()).Msg("incompatible symbol sets")
		return series.Series{}, Handle{}, perrors.New(perrors.IncompatibleSymbols)
	}
	symbols := a.Symbols()

	// 2. Short-circuit on an empty operand (spec §4.5 step 2).
	if a.Size() == 0 || b.Size() == 0 {
		return series.NewEmpty(symbols, 0), Handle{}, nil
	}

	aTerms, bTerms := a.Terms(), b.Terms()
	cancelFlag := &atomic.Bool{}
	handle := Handle{flag: cancelFlag}
	watchCtx(ctx, cancelFlag)

	// 3. Estimate (spec §4.5 step 3, §4.4).
	est := estimator.Predict(aTerms, bTerms, cfg.EstimatorSamples, cfg.MaxLoadFactor, cfg.Seed)
	state = Scheduling
	logger.Debug().
		Int("predicted_count", est.PredictedCount).
		Float64("density", est.Density).
		Int("capacity", est.Capacity).
		Msg("estimated output cardinality")

	// 4. Choose strategy (spec §4.5 step 4, §4.3).
	strategy := partition.Choose(est.Density, cfg.DensityThreshold)

	threadCount := cfg.ResolvedThreadCount()
	if len(aTerms)*len(bTerms) < cfg.MinParallelWork {
		threadCount = 1
	}

	kern := kernel.Select(aTerms[0].Mono, bTerms[0].Mono)

	// 5. Spawn workers (spec §4.5 step 5).
	state = Running
	run := runParams{
		aTerms:      aTerms,
		bTerms:      bTerms,
		arity:       symbols.Size(),
		capacity:    est.Capacity,
		cfg:         cfg,
		threadCount: threadCount,
		kernel:      kern,
		cancel:      cancelFlag,
		runID:       runID,
	}

	var result *mergedResult
	var runErr error
	if strategy == partition.RowBand {
		result, runErr = runRowBand(run)
	} else {
		result, runErr = runHashBand(run)
	}

	if runErr != nil {
		if perr, ok := runErr.(*perrors.Error); ok && perr.Kind == perrors.Cancelled {
			state = Cancelled
			logger.Warn().Msg("multiplication cancelled")
		} else {
			state = Failed
			logger.Error().Err(runErr).Msg("multiplication failed")
		}
		return series.Series{}, handle, runErr
	}

	// 6/7. Merge and return (spec §4.5 steps 6-7).
	state = Merging
	out := series.FromTable(symbols, result.table)
	state = Done
	logger.Debug().Int("result_size", out.Size()).Str("state", state.String()).Msg("multiplication done")
	return out, handle, nil
}

func watchCtx(ctx context.Context, flag *atomic.Bool) {
	if ctx == nil || ctx.Done() == nil {
		return
	}
	select {
	case <-ctx.Done():
		flag.Store(true)
	default:
		go func() {
			<-ctx.Done()
			flag.Store(true)
		}()
	}
}
