// Package estimator predicts the cardinality of a multiplication's output
// by sampling random term-pairs, so the driver can size the output table
// and choose a partition strategy before doing any real work (spec §4.4).
package estimator

import (
	"math/rand"

	"modernc.org/mathutil"

	"github.com/piranha-go/piranha/piranha/term"
)

// Result bundles the estimator's predictions.
type Result struct {
	// PredictedCount is the extrapolated output term count, N-hat.
	PredictedCount int
	// Density is distinct/sampled among the drawn sample: close to 1 means
	// almost every sampled product is distinct (sparse regime); close to 0
	// means heavy collisions (dense regime, e.g. power expansions).
	Density float64
	// Capacity is the next power-of-two bucket count satisfying
	// PredictedCount / maxLoad, per spec §4.4.
	Capacity int
}

// Predict samples `samples` random pairs (i, j) in [0,|a|) x [0,|b|),
// multiplies their monomials (coefficients are not computed: only the
// monomial addition is needed to classify distinctness), and extrapolates
// to the full Cartesian product using a birthday-paradox-style estimator.
// The sampler is seeded, so results are deterministic for a fixed seed
// (spec §4.4).
//
// The formula is intentionally simple and safe-by-construction: it never
// underestimates an empty product, and overestimation (explicitly declared
// safe by the caller) is its only failure mode for small samples — see
// DESIGN.md for the derivation.
func Predict(a, b []term.Term, samples int, maxLoad float64, seed uint64) Result {
	total := len(a) * len(b)
	if total == 0 || samples <= 0 {
		return Result{PredictedCount: 0, Density: 0, Capacity: 8}
	}
	if samples > total {
		samples = total
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	seen := make(map[uint64]struct{}, samples)
	for k := 0; k < samples; k++ {
		i := rng.Intn(len(a))
		j := rng.Intn(len(b))
		m := a[i].Mono.Add(b[j].Mono)
		seen[m.Hash()] = struct{}{}
	}

	distinct := len(seen)
	density := float64(distinct) / float64(samples)

	// Birthday-paradox correction: a naive linear extrapolation
	// (distinct/samples * total) undercounts collisions once the sample
	// covers a meaningful fraction of the output space. We widen the
	// estimate by the expected number of within-sample collisions,
	// using an integer square root (mathutil.ISqrt) of the sample size
	// as the collision-scale term, then apply a 20% safety margin so
	// sampling noise biases toward overestimation, which is safe
	// (spec §4.4); underestimation only costs a mid-flight resize.
	collisionScale := 1.0 + float64(mathutil.ISqrt(uint64(samples)))/float64(samples)
	predicted := int(float64(distinct) * float64(total) / float64(samples) * collisionScale * 1.2)
	if predicted > total {
		predicted = total
	}
	if predicted < 1 {
		predicted = 1
	}

	capNeeded := int(float64(predicted) / maxLoad)
	capacity := nextPow2(capNeeded)
	if capacity < 8 {
		capacity = 8
	}

	return Result{PredictedCount: predicted, Density: density, Capacity: capacity}
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
