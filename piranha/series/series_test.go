package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piranha-go/piranha/piranha/internal/accumulator"
	"github.com/piranha-go/piranha/piranha/coefficient"
	"github.com/piranha-go/piranha/piranha/monomial"
	"github.com/piranha-go/piranha/piranha/symbol"
	"github.com/piranha-go/piranha/piranha/term"
)

func TestNewEmpty(t *testing.T) {
	symbols := symbol.New("x", "y")
	s := NewEmpty(symbols, 4)
	require.Equal(t, 0, s.Size())
	require.True(t, s.IsZero())
	require.True(t, s.Symbols().Equal(symbols))
}

func TestFromTermsDropsZeroAndMerges(t *testing.T) {
	symbols := symbol.New("x")
	s, err := FromTerms(symbols, []term.Term{
		{Coef: coefficient.NewInt(0), Mono: monomial.Sparse{0}},
		{Coef: coefficient.NewInt(2), Mono: monomial.Sparse{1}},
		{Coef: coefficient.NewInt(3), Mono: monomial.Sparse{1}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, s.Size())
	terms := s.Terms()
	require.Len(t, terms, 1)
	require.Equal(t, int64(5), terms[0].Coef.(coefficient.Int).V.Int64())
}

func TestCloneIsIndependent(t *testing.T) {
	symbols := symbol.New("x")
	s, err := FromTerms(symbols, []term.Term{{Coef: coefficient.NewInt(1), Mono: monomial.Sparse{0}}})
	require.NoError(t, err)

	c := s.Clone()
	require.NoError(t, c.table.Insert(term.Term{Coef: coefficient.NewInt(9), Mono: monomial.Sparse{5}}))
	require.Equal(t, 1, s.Size())
	require.Equal(t, 2, c.Size())
}

func TestNegate(t *testing.T) {
	symbols := symbol.New("x")
	s, err := FromTerms(symbols, []term.Term{{Coef: coefficient.NewInt(3), Mono: monomial.Sparse{0}}})
	require.NoError(t, err)

	n := s.Negate()
	require.Equal(t, 1, n.Size())
	require.Equal(t, int64(-3), n.Terms()[0].Coef.(coefficient.Int).V.Int64())
}

func TestAddMergesDisjointAndCancelling(t *testing.T) {
	symbols := symbol.New("x")
	a, err := FromTerms(symbols, []term.Term{{Coef: coefficient.NewInt(1), Mono: monomial.Sparse{0}}})
	require.NoError(t, err)
	b, err := FromTerms(symbols, []term.Term{{Coef: coefficient.NewInt(-1), Mono: monomial.Sparse{0}}})
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, 0, sum.Size())
}

func TestOne(t *testing.T) {
	symbols := symbol.New("x", "y")
	one := One(symbols, monomial.Identity(2), coefficient.NewInt(1))
	require.Equal(t, 1, one.Size())
	require.True(t, one.Terms()[0].Mono.IsIdentity())
}

func TestFromTableWraps(t *testing.T) {
	symbols := symbol.New("x")
	tbl := accumulator.New(1, 4, 0.5)
	require.NoError(t, tbl.Insert(term.Term{Coef: coefficient.NewInt(7), Mono: monomial.Sparse{2}}))

	s := FromTable(symbols, tbl)
	require.Equal(t, 1, s.Size())
	require.Same(t, tbl, s.Table())
}
