package driver

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/piranha-go/piranha/piranha/internal/accumulator"
	"github.com/piranha-go/piranha/piranha/internal/config"
	"github.com/piranha-go/piranha/piranha/internal/kernel"
	"github.com/piranha-go/piranha/piranha/internal/partition"
	"github.com/piranha-go/piranha/piranha/internal/perrors"
	"github.com/piranha-go/piranha/piranha/internal/workerpool"
	"github.com/piranha-go/piranha/piranha/term"
)

type runParams struct {
	aTerms, bTerms []term.Term
	arity          int
	capacity       int
	cfg            config.Config
	threadCount    int
	kernel         kernel.Kernel
	cancel         *atomic.Bool
	runID          uuid.UUID
}

type mergedResult struct {
	table *accumulator.Table
}

// firstErrorSlot is the single-producer error slot of spec §7: the first
// worker to fail wins; later failures are discarded (logged at debug).
type firstErrorSlot struct {
	ptr atomic.Pointer[perrors.Error]
}

func (s *firstErrorSlot) set(err *perrors.Error) {
	if s.ptr.CompareAndSwap(nil, err) {
		return
	}
	log.Debug().Err(err).Msg("discarding subsequent worker error")
}

func (s *firstErrorSlot) get() error {
	p := s.ptr.Load()
	if p == nil {
		return nil
	}
	return p
}

// runHashBand implements the sparse-regime strategy of spec §4.3: every
// worker scans the full A x B Cartesian product but deposits a product
// only when its monomial's hash falls in the worker's own band of
// [0, capacity). Because bands are disjoint, no monomial appears in two
// workers' tables, so the single-threaded final assembly re-inserts every
// worker's terms into one output table without any coefficient merging.
func runHashBand(p runParams) (*mergedResult, error) {
	n := p.threadCount
	bands := partition.HashBands(p.capacity, n)
	tables := make([]*accumulator.Table, len(bands))
	perWorkerHint := p.capacity / max(1, len(bands))
	for i := range tables {
		tables[i] = accumulator.New(p.arity, perWorkerHint, p.cfg.MaxLoadFactor)
	}

	errs := &firstErrorSlot{}
	pool := workerpool.New(n)
	defer pool.Close()

	mask := uint64(p.capacity - 1)
	fns := make([]func(), len(bands))
	for wi, band := range bands {
		wi, band := wi, band
		fns[wi] = func() {
			dest := tables[wi]
			for i := range p.aTerms {
				if p.cancel.Load() {
					return
				}
				for j := range p.bTerms {
					prod, err := p.kernel.Combine(p.aTerms[i], p.bTerms[j])
					if err != nil {
						errs.set(perrors.Wrap(perrors.CoefficientError, err).WithPair(wi, i, j))
						p.cancel.Store(true)
						return
					}
					bucket := int(prod.Mono.Hash() & mask)
					if !band.Contains(bucket) {
						continue
					}
					if p.cfg.Filter != nil && !p.cfg.Filter(prod) {
						continue
					}
					if err := dest.Insert(prod); err != nil {
						errs.set(perrors.Wrap(perrors.CoefficientError, err).WithPair(wi, i, j))
						p.cancel.Store(true)
						return
					}
				}
			}
		}
	}

	pool.Run(fns, p.cancel)

	if err := errs.get(); err != nil {
		return nil, err
	}
	if p.cancel.Load() {
		return nil, perrors.New(perrors.Cancelled)
	}

	out := accumulator.New(p.arity, p.capacity, p.cfg.MaxLoadFactor)
	for _, t := range tables {
		t.Iterate(func(tm term.Term) bool {
			_ = out.Insert(tm)
			return true
		})
	}
	log.Debug().Str("run_id", p.runID.String()).Int("workers", n).Msg("hash-band run complete")
	return &mergedResult{table: out}, nil
}

// runRowBand implements the dense-regime strategy of spec §4.3
// "Optimization": each worker owns a disjoint, contiguous slice of the A
// index range and scans it against the full B range into its own private
// accumulator; results are combined with a true Accumulator.Merge pass.
func runRowBand(p runParams) (*mergedResult, error) {
	n := p.threadCount
	bands := partition.RowBands(len(p.aTerms), n)
	tables := make([]*accumulator.Table, len(bands))
	for i := range tables {
		tables[i] = accumulator.New(p.arity, p.capacity/max(1, len(bands)), p.cfg.MaxLoadFactor)
	}

	errs := &firstErrorSlot{}
	pool := workerpool.New(n)
	defer pool.Close()

	fns := make([]func(), len(bands))
	for wi, band := range bands {
		wi, band := wi, band
		fns[wi] = func() {
			dest := tables[wi]
			for i := band.Lo; i < band.Hi; i++ {
				if p.cancel.Load() {
					return
				}
				for j := range p.bTerms {
					if err := p.kernel.Multiply(p.aTerms[i], p.bTerms[j], dest, p.cfg.Filter); err != nil {
						errs.set(perrors.Wrap(perrors.CoefficientError, err).WithPair(wi, i, j))
						p.cancel.Store(true)
						return
					}
				}
			}
		}
	}

	pool.Run(fns, p.cancel)

	if err := errs.get(); err != nil {
		return nil, err
	}
	if p.cancel.Load() {
		return nil, perrors.New(perrors.Cancelled)
	}

	out := accumulator.New(p.arity, p.capacity, p.cfg.MaxLoadFactor)
	for _, t := range tables {
		if err := out.Merge(t); err != nil {
			return nil, perrors.Wrap(perrors.CoefficientError, err)
		}
	}
	log.Debug().Str("run_id", p.runID.String()).Int("workers", n).Msg("row-band run complete")
	return &mergedResult{table: out}, nil
}
