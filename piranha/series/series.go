// Package series implements the Series container: a mapping from monomial
// to non-zero coefficient, physically backed by the open-addressed
// accumulator table, plus a reference to the SymbolSet its monomials are
// defined over (spec §3, §6).
package series

import (
	"github.com/piranha-go/piranha/piranha/internal/accumulator"
	"github.com/piranha-go/piranha/piranha/symbol"
	"github.com/piranha-go/piranha/piranha/term"
)

// Series is a sparse mapping from monomial to non-zero coefficient over a
// fixed SymbolSet.
type Series struct {
	symbols symbol.SymbolSet
	table   *accumulator.Table
}

// NewEmpty constructs an empty series over symbols, with an accumulator
// pre-sized for capacityHint entries (spec §6 "Series.new_empty").
func NewEmpty(symbols symbol.SymbolSet, capacityHint int) Series {
	return Series{
		symbols: symbols,
		table:   accumulator.New(symbols.Size(), capacityHint, 0.5),
	}
}

// FromTerms builds a series from an explicit term list, merging any
// duplicate monomials and dropping (well, never inserting) zero-coefficient
// entries — the series invariant.
func FromTerms(symbols symbol.SymbolSet, terms []term.Term) (Series, error) {
	s := NewEmpty(symbols, len(terms))
	for _, t := range terms {
		if t.Coef.IsZero() {
			continue
		}
		if err := s.table.Insert(t); err != nil {
			return Series{}, err
		}
	}
	return s, nil
}

// Symbols returns the series' SymbolSet.
func (s Series) Symbols() symbol.SymbolSet { return s.symbols }

// Size returns the number of non-zero terms.
func (s Series) Size() int {
	if s.table == nil {
		return 0
	}
	return s.table.Size()
}

// Terms returns every term, in arbitrary order.
func (s Series) Terms() []term.Term {
	if s.table == nil {
		return nil
	}
	return s.table.Terms()
}

// Table exposes the backing accumulator to other packages of the module
// (the root package's Nested coefficient merges through it). Exported for
// cross-package use within the module only by convention — callers
// outside piranha should use Terms/Size/Symbols.
func (s Series) Table() *accumulator.Table { return s.table }

// FromTable wraps an already-populated accumulator as a Series. Used by
// the driver to assemble its final result directly from a worker's (or
// the merged) accumulator without copying terms through FromTerms.
func FromTable(symbols symbol.SymbolSet, table *accumulator.Table) Series {
	return Series{symbols: symbols, table: table}
}

// IsZero reports whether the series has no non-zero terms.
func (s Series) IsZero() bool { return s.Size() == 0 }

// Clone returns an independent deep copy of s.
func (s Series) Clone() Series {
	out := NewEmpty(s.symbols, s.Size())
	s.table.Iterate(func(t term.Term) bool {
		_ = out.table.Insert(term.Term{Coef: t.Coef.Clone(), Mono: t.Mono})
		return true
	})
	return out
}

// Negate returns a new series with every coefficient negated.
func (s Series) Negate() Series {
	out := NewEmpty(s.symbols, s.Size())
	s.table.Iterate(func(t term.Term) bool {
		_ = out.table.Insert(term.Term{Coef: t.Coef.Negate(), Mono: t.Mono})
		return true
	})
	return out
}

// Add returns a new series equal to s + other (both must share a symbol
// set). This is a plain additive merge, independent of the multiplier.
func (s Series) Add(other Series) (Series, error) {
	out := s.Clone()
	var firstErr error
	other.table.Iterate(func(t term.Term) bool {
		if err := out.table.Insert(term.Term{Coef: t.Coef.Clone(), Mono: t.Mono}); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	if firstErr != nil {
		return Series{}, firstErr
	}
	return out, nil
}

// One returns the one-term series {1 * identity-monomial} over symbols,
// used by the multiplicative-identity algebraic law (spec §8 property 4).
func One(symbols symbol.SymbolSet, identity term.Monomial, unit term.Coefficient) Series {
	s := NewEmpty(symbols, 1)
	_ = s.table.Insert(term.Term{Coef: unit, Mono: identity})
	return s
}
