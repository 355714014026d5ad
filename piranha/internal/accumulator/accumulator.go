// Package accumulator implements the open-addressed, merge-on-insert hash
// table that backs both the multiplier's output and each worker's private
// scratch space (spec §4.1). It is lock-free by construction: callers are
// responsible for giving each goroutine its own Table (spec §5).
package accumulator

import (
	"github.com/piranha-go/piranha/piranha/internal/perrors"
	"github.com/piranha-go/piranha/piranha/term"
)

type slot struct {
	used      bool
	tombstone bool
	t         term.Term
}

// Table is an open-addressing hash table keyed by term.Monomial, with
// linear probing and power-of-two capacity. A merge that produces a zero
// coefficient evicts the slot (tombstone) immediately, so every
// observer-visible state satisfies "every stored coefficient is non-zero"
// (spec §4.1).
type Table struct {
	slots      []slot
	count      int // live (non-tombstone) entries
	tombstones int
	arity      int
	maxLoad    float64
}

// New creates a Table sized for the given arity (the owning series'
// SymbolSet size) and initial capacity hint. Capacity is rounded up to a
// power of two, with a floor of 8.
func New(arity int, capacityHint int, maxLoadFactor float64) *Table {
	cap := nextPow2(capacityHint)
	if cap < 8 {
		cap = 8
	}
	if maxLoadFactor <= 0 || maxLoadFactor > 1 {
		maxLoadFactor = 0.5
	}
	return &Table{
		slots:   make([]slot, cap),
		arity:   arity,
		maxLoad: maxLoadFactor,
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Size returns the number of live (non-zero) entries.
func (t *Table) Size() int { return t.count }

// Capacity returns the current bucket count.
func (t *Table) Capacity() int { return len(t.slots) }

// Insert folds term into the table: if its monomial is already present,
// the existing coefficient is updated in place (existing += term.Coef); if
// the sum is zero the entry is evicted. If absent, the term is inserted
// directly (its coefficient must be non-zero). Returns IncompatibleSymbols
// if the monomial's arity does not match the table's.
func (t *Table) Insert(tm term.Term) error {
	if err := t.insertNoCheck(tm); err != nil {
		return err
	}
	return t.debugCheckInvariants()
}

func (t *Table) insertNoCheck(tm term.Term) error {
	if tm.Mono.Arity() != t.arity {
		return perrors.New(perrors.IncompatibleSymbols)
	}
	if t.count+1 > int(float64(len(t.slots))*t.maxLoad) {
		t.grow()
	}

	mask := uint64(len(t.slots) - 1)
	idx := tm.Mono.Hash() & mask
	firstTomb := -1

	for {
		s := &t.slots[idx]
		if s.tombstone {
			if firstTomb < 0 {
				firstTomb = int(idx)
			}
			idx = (idx + 1) & mask
			continue
		}
		if !s.used {
			// Genuinely never-written slot: the chain ends here. Insert at
			// the first tombstone seen along the way, if any, otherwise here.
			if tm.Coef.IsZero() {
				return nil
			}
			dest := idx
			if firstTomb >= 0 {
				dest = uint64(firstTomb)
				t.tombstones--
			}
			t.slots[dest] = slot{used: true, t: tm}
			t.count++
			return nil
		}
		if s.t.Mono.Equal(tm.Mono) {
			if err := s.t.Coef.AddInPlace(tm.Coef); err != nil {
				return err
			}
			if s.t.Coef.IsZero() {
				s.used = false
				s.tombstone = true
				s.t = term.Term{}
				t.count--
				t.tombstones++
			}
			return nil
		}
		idx = (idx + 1) & mask
	}
}

// grow doubles capacity and rehashes every live entry. Rehashing only
// happens at resize events, per spec §4.1.
func (t *Table) grow() {
	old := t.slots
	t.slots = make([]slot, len(old)*2)
	t.count = 0
	t.tombstones = 0
	for _, s := range old {
		if s.used && !s.tombstone {
			_ = t.insertNoCheck(s.t)
		}
	}
}

// Merge folds every live entry of other into t, preserving the
// non-zero-coefficient invariant. Used to combine per-worker accumulators
// in row-band mode (spec §4.5 step 6).
func (t *Table) Merge(other *Table) error {
	for _, s := range other.slots {
		if s.used && !s.tombstone {
			if err := t.insertNoCheck(s.t); err != nil {
				return err
			}
		}
	}
	return t.debugCheckInvariants()
}

// Iterate calls fn for every live term, in arbitrary order. Iteration
// stops early if fn returns false.
func (t *Table) Iterate(fn func(term.Term) bool) {
	for _, s := range t.slots {
		if s.used && !s.tombstone {
			if !fn(s.t) {
				return
			}
		}
	}
}

// Terms collects every live term into a freshly-allocated slice.
func (t *Table) Terms() []term.Term {
	out := make([]term.Term, 0, t.count)
	t.Iterate(func(tm term.Term) bool {
		out = append(out, tm)
		return true
	})
	return out
}

// LoadFactor reports the current live-entry load factor.
func (t *Table) LoadFactor() float64 {
	if len(t.slots) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.slots))
}
