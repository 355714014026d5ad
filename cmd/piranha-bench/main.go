// Command piranha-bench runs the dense/sparse benchmark scenarios from
// spec §8 (S3-S6) across a sweep of thread counts and reports timing and
// term counts, exercising the public piranha.Multiply entry point exactly
// as a library caller would.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/piranha-go/piranha/piranha"
	"github.com/piranha-go/piranha/piranha/coefficient"
	"github.com/piranha-go/piranha/piranha/monomial"
	"github.com/piranha-go/piranha/piranha/series"
	"github.com/piranha-go/piranha/piranha/symbol"
	"github.com/piranha-go/piranha/piranha/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var scenario string
	var threads []int

	cmd := &cobra.Command{
		Use:   "piranha-bench",
		Short: "Run the piranha sparse-series-multiplier benchmark scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(scenario, threads)
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "s3", "benchmark scenario: s3, s4, s5, s6")
	cmd.Flags().IntSliceVar(&threads, "threads", []int{1, 2, 3, 4}, "thread counts to sweep")
	return cmd
}

func runScenario(scenario string, threads []int) error {
	fmt.Printf("host: avx2=%v sse42=%v neon=%v\n", cpu.X86.HasAVX2, cpu.X86.HasSSE42, cpu.ARM64.HasASIMD)

	var a, b series.Series
	var err error
	switch scenario {
	case "s3", "s4":
		a, b, err = buildDense(scenario)
	case "s5", "s6":
		a, b, err = buildSparse(scenario)
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
	if err != nil {
		return err
	}

	for _, n := range threads {
		start := time.Now()
		out, err := piranha.Multiply(a, b, piranha.WithThreadCount(n))
		if err != nil {
			return fmt.Errorf("threads=%d: %w", n, err)
		}
		fmt.Printf("scenario=%s threads=%d size=%d elapsed=%s\n", scenario, n, out.Size(), time.Since(start))
	}
	return nil
}

// buildDense constructs f = (1+x+y+z+t)^10 and either g = f+1 (S3) or
// h = (1-x+y+z+t)^10 (S4), per spec §8.
func buildDense(scenario string) (series.Series, series.Series, error) {
	symbols := symbol.New("x", "y", "z", "t")
	f, err := power(linear(symbols, []int64{1, 1, 1, 1}), 10)
	if err != nil {
		return series.Series{}, series.Series{}, err
	}
	if scenario == "s3" {
		g, err := f.Add(one(symbols))
		return f, g, err
	}
	h, err := power(linear(symbols, []int64{-1, 1, 1, 1}), 10)
	return f, h, err
}

// buildSparse constructs f = (1+x+y+2z^2+3t^3+5u^5)^8 and either
// g = (1+u+t+2z^2+3y^3+5x^5)^8 (S5) or the cancelling variant h with u
// negated (S6), per spec §8.
func buildSparse(scenario string) (series.Series, series.Series, error) {
	symbols := symbol.New("x", "y", "z", "t", "u")
	f, err := power(sparseBase(symbols, map[string]int64{"x": 1, "y": 1}, map[string][2]int64{"z": {2, 2}, "t": {3, 3}, "u": {5, 5}}), 8)
	if err != nil {
		return series.Series{}, series.Series{}, err
	}
	uSign := int64(1)
	if scenario == "s6" {
		uSign = -1
	}
	g, err := power(sparseBase(symbols,
		map[string]int64{"u": uSign, "t": 1},
		map[string][2]int64{"z": {2, 2}, "y": {3, 3}, "x": {5, 5}}), 8)
	return f, g, err
}

// linear builds the one-term-per-variable-plus-unit series 1 + c1*v1 + ...
func linear(symbols symbol.SymbolSet, coeffs []int64) series.Series {
	terms := []term.Term{{Coef: coefficient.NewInt(1), Mono: monomial.Identity(symbols.Size())}}
	for i, c := range coeffs {
		exps := make([]int32, symbols.Size())
		exps[i] = 1
		terms = append(terms, term.Term{Coef: coefficient.NewInt(c), Mono: monomial.Sparse(exps)})
	}
	out, _ := series.FromTerms(symbols, terms)
	return out
}

// sparseBase builds 1 + sum(linearCoef * var^1) + sum(powCoef * var^exp)
// for the higher-power terms used by S5/S6.
func sparseBase(symbols symbol.SymbolSet, linear map[string]int64, powered map[string][2]int64) series.Series {
	terms := []term.Term{{Coef: coefficient.NewInt(1), Mono: monomial.Identity(symbols.Size())}}
	for name, c := range linear {
		pos, _ := symbols.PositionOf(name)
		exps := make([]int32, symbols.Size())
		exps[pos] = 1
		terms = append(terms, term.Term{Coef: coefficient.NewInt(c), Mono: monomial.Sparse(exps)})
	}
	for name, ce := range powered {
		pos, _ := symbols.PositionOf(name)
		exps := make([]int32, symbols.Size())
		exps[pos] = int32(ce[1])
		terms = append(terms, term.Term{Coef: coefficient.NewInt(ce[0]), Mono: monomial.Sparse(exps)})
	}
	out, _ := series.FromTerms(symbols, terms)
	return out
}

func one(symbols symbol.SymbolSet) series.Series {
	return series.One(symbols, monomial.Identity(symbols.Size()), coefficient.NewInt(1))
}

// power computes base^n by repeated multiplication through the public
// piranha.Multiply entry point.
func power(base series.Series, n int) (series.Series, error) {
	result := one(base.Symbols())
	for i := 0; i < n; i++ {
		var err error
		result, err = piranha.Multiply(result, base)
		if err != nil {
			return series.Series{}, err
		}
	}
	return result, nil
}
