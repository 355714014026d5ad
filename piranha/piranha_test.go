package piranha_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/piranha-go/piranha/piranha"
	"github.com/piranha-go/piranha/piranha/coefficient"
	"github.com/piranha-go/piranha/piranha/monomial"
	"github.com/piranha-go/piranha/piranha/series"
	"github.com/piranha-go/piranha/piranha/symbol"
	"github.com/piranha-go/piranha/piranha/term"
)

// fingerprint renders a series as a sorted "monomial=coefficient" list so
// two series built independently (different thread counts, different
// operand order) can be compared with cmp.Diff regardless of internal
// iteration order.
func fingerprint(s series.Series) []string {
	out := make([]string, 0, s.Size())
	for _, tm := range s.Terms() {
		coef := tm.Coef.(coefficient.Int).V.String()
		out = append(out, fmt.Sprintf("%v=%s", tm.Mono, coef))
	}
	sort.Strings(out)
	return out
}

func mkSeries(t *testing.T, symbols symbol.SymbolSet, pairs map[int32]int64) series.Series {
	t.Helper()
	terms := make([]term.Term, 0, len(pairs))
	for exp, coef := range pairs {
		terms = append(terms, term.Term{Coef: coefficient.NewInt(coef), Mono: monomial.Sparse{exp}})
	}
	s, err := series.FromTerms(symbols, terms)
	require.NoError(t, err)
	return s
}

func coefOf(t *testing.T, s series.Series, exp int32) (int64, bool) {
	t.Helper()
	for _, tm := range s.Terms() {
		if tm.Mono.Equal(monomial.Sparse{exp}) {
			return tm.Coef.(coefficient.Int).V.Int64(), true
		}
	}
	return 0, false
}

// S1 — Single variable square: f = 1 + x, multiply(f, f) yields exactly
// {(1, x^0), (2, x^1), (1, x^2)} (spec §8).
func TestS1SingleVariableSquare(t *testing.T) {
	symbols := symbol.New("x")
	f := mkSeries(t, symbols, map[int32]int64{0: 1, 1: 1})

	out, err := piranha.Multiply(f, f)
	require.NoError(t, err)
	require.Equal(t, 3, out.Size())

	c0, _ := coefOf(t, out, 0)
	c1, _ := coefOf(t, out, 1)
	c2, _ := coefOf(t, out, 2)
	require.Equal(t, int64(1), c0)
	require.Equal(t, int64(2), c1)
	require.Equal(t, int64(1), c2)
}

// S2 — Cancellation: f = x - y, g = x + y, multiply(f, g) yields exactly
// {(1, x^2), (-1, y^2)}; no xy term is stored.
func TestS2Cancellation(t *testing.T) {
	symbols := symbol.New("x", "y")
	f, err := series.FromTerms(symbols, []term.Term{
		{Coef: coefficient.NewInt(1), Mono: monomial.Sparse{1, 0}},
		{Coef: coefficient.NewInt(-1), Mono: monomial.Sparse{0, 1}},
	})
	require.NoError(t, err)
	g, err := series.FromTerms(symbols, []term.Term{
		{Coef: coefficient.NewInt(1), Mono: monomial.Sparse{1, 0}},
		{Coef: coefficient.NewInt(1), Mono: monomial.Sparse{0, 1}},
	})
	require.NoError(t, err)

	out, err := piranha.Multiply(f, g)
	require.NoError(t, err)
	require.Equal(t, 2, out.Size())

	for _, tm := range out.Terms() {
		v := tm.Coef.(coefficient.Int).V.Int64()
		switch {
		case tm.Mono.Equal(monomial.Sparse{2, 0}):
			require.Equal(t, int64(1), v)
		case tm.Mono.Equal(monomial.Sparse{0, 2}):
			require.Equal(t, int64(-1), v)
		default:
			t.Fatalf("unexpected surviving monomial %v", tm.Mono)
		}
	}
}

// S7 — Incompatible symbols: operands over {x} and {y} return
// IncompatibleSymbols.
func TestS7IncompatibleSymbols(t *testing.T) {
	fx := mkSeries(t, symbol.New("x"), map[int32]int64{1: 1})
	fy := mkSeries(t, symbol.New("y"), map[int32]int64{1: 1})

	_, err := piranha.Multiply(fx, fy)
	require.Error(t, err)
	perr, ok := err.(*piranha.Error)
	require.True(t, ok)
	require.Equal(t, piranha.IncompatibleSymbols, perr.Kind)
}

// Commutativity: multiply(f, g) == multiply(g, f) (spec §8 property 1).
func TestCommutativity(t *testing.T) {
	symbols := symbol.New("x", "y")
	f := mkSeries2(t, symbols, [][3]int64{{1, 0, 2}, {0, 1, 3}})
	g := mkSeries2(t, symbols, [][3]int64{{1, 1, 5}, {2, 0, -1}})

	fg, err := piranha.Multiply(f, g)
	require.NoError(t, err)
	gf, err := piranha.Multiply(g, f)
	require.NoError(t, err)

	if diff := cmp.Diff(fingerprint(fg), fingerprint(gf)); diff != "" {
		t.Fatalf("multiply(f, g) != multiply(g, f) (-fg +gf):\n%s", diff)
	}
}

// Zero / unit identities: multiply(f, 0) == 0 and multiply(f, 1) == f
// (spec §8 property 4).
func TestZeroAndUnitIdentity(t *testing.T) {
	symbols := symbol.New("x")
	f := mkSeries(t, symbols, map[int32]int64{0: 1, 1: 2, 2: 3})
	zero := series.NewEmpty(symbols, 0)
	one := series.One(symbols, monomial.Identity(1), coefficient.NewInt(1))

	outZero, err := piranha.Multiply(f, zero)
	require.NoError(t, err)
	require.Equal(t, 0, outZero.Size())

	outOne, err := piranha.Multiply(f, one)
	require.NoError(t, err)
	if diff := cmp.Diff(fingerprint(f), fingerprint(outOne)); diff != "" {
		t.Fatalf("multiply(f, 1) != f (-f +outOne):\n%s", diff)
	}
}

// Non-zero invariant: every term in the result has a non-zero coefficient
// (spec §8 property 5).
func TestNonZeroInvariant(t *testing.T) {
	symbols := symbol.New("x")
	f := mkSeries(t, symbols, map[int32]int64{0: 1, 1: -1})
	g := mkSeries(t, symbols, map[int32]int64{0: 1, 1: 1})

	out, err := piranha.Multiply(f, g)
	require.NoError(t, err)
	for _, tm := range out.Terms() {
		require.False(t, tm.Coef.IsZero())
	}
}

// Cardinality bound: |multiply(f, g)| <= |f| * |g| (spec §8 property 6).
func TestCardinalityBound(t *testing.T) {
	symbols := symbol.New("x", "y")
	f := mkSeries2(t, symbols, [][3]int64{{1, 0, 1}, {0, 1, 1}, {2, 0, 1}})
	g := mkSeries2(t, symbols, [][3]int64{{1, 0, 1}, {0, 1, 1}})

	out, err := piranha.Multiply(f, g)
	require.NoError(t, err)
	require.LessOrEqual(t, out.Size(), f.Size()*g.Size())
}

// Determinism across thread counts for an exact ring (spec §8
// "Determinism"). MinParallelWork is lowered to 0 so the 40x40 input is
// not forced onto a single worker by the serial-fallback threshold.
func TestDeterminismAcrossThreadCounts(t *testing.T) {
	symbols := symbol.New("x", "y", "z")
	f := mkSeries3(t, symbols, 40, 1)
	g := mkSeries3(t, symbols, 40, 2)

	var reference []string
	for i, threads := range []int{1, 2, 3, 4} {
		out, err := piranha.Multiply(f, g, piranha.WithThreadCount(threads), piranha.WithMinParallelWork(0))
		require.NoError(t, err)
		fp := fingerprint(out)
		if i == 0 {
			reference = fp
			continue
		}
		if diff := cmp.Diff(reference, fp); diff != "" {
			t.Fatalf("thread_count=%d diverged from thread_count=1 (-ref +got):\n%s", threads, diff)
		}
	}
}

// Cancellation: a multiplication started with an already-cancelled
// context returns within a bounded time, and if it reports an error, the
// error is of Cancelled kind (spec §8 "Cancellation"). The test only
// asserts on the error's kind when one is returned, not that one always
// is.
func TestCancellation(t *testing.T) {
	symbols := symbol.New("x", "y", "z")
	f := mkSeries3(t, symbols, 400, 1)
	g := mkSeries3(t, symbols, 400, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		_, err := piranha.MultiplyContext(ctx, f, g)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			perr, ok := err.(*piranha.Error)
			require.True(t, ok)
			require.Equal(t, piranha.Cancelled, perr.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("multiply did not return within the cancellation deadline")
	}
}

// mkSeries2 builds a series from (exp_x, exp_y, coef) triples.
func mkSeries2(t *testing.T, symbols symbol.SymbolSet, rows [][3]int64) series.Series {
	t.Helper()
	terms := make([]term.Term, 0, len(rows))
	for _, r := range rows {
		terms = append(terms, term.Term{
			Coef: coefficient.NewInt(r[2]),
			Mono: monomial.Sparse{int32(r[0]), int32(r[1])},
		})
	}
	s, err := series.FromTerms(symbols, terms)
	require.NoError(t, err)
	return s
}

// mkSeries3 builds an n-term series over a 3-symbol set with simple
// distinct exponents, for determinism/cancellation tests that just need
// enough bulk to exercise multiple workers.
func mkSeries3(t *testing.T, symbols symbol.SymbolSet, n int, salt int32) series.Series {
	t.Helper()
	terms := make([]term.Term, 0, n)
	for i := int32(0); i < int32(n); i++ {
		terms = append(terms, term.Term{
			Coef: coefficient.NewInt(int64(i + salt)),
			Mono: monomial.Sparse{i % 5, (i + salt) % 7, (i * 2) % 3},
		})
	}
	s, err := series.FromTerms(symbols, terms)
	require.NoError(t, err)
	return s
}
