// Package partition slices the Cartesian product of input term indices
// into disjoint workgroups (spec §4.3). Two strategies are provided:
// hash-band (sparse regime) and row-band (dense regime); the driver picks
// between them using the estimator's density signal.
package partition

import "github.com/samber/lo"

// Strategy names the partition approach chosen for a multiplication.
type Strategy int

const (
	// HashBand assigns each worker a contiguous band of output hash
	// buckets; every worker scans the full A x B product but only
	// deposits products landing in its band.
	HashBand Strategy = iota
	// RowBand assigns each worker a contiguous, disjoint slice of the A
	// index range; workers produce disjoint row-bands merged afterward.
	RowBand
)

// HashBands partitions the bucket space [0, capacity) into n contiguous,
// non-overlapping bands and returns, for worker k, the half-open interval
// [lo, hi) of bucket indices it owns.
func HashBands(capacity, n int) []Band {
	if n <= 0 {
		n = 1
	}
	chunk := (capacity + n - 1) / n
	bands := make([]Band, 0, n)
	for lo := 0; lo < capacity; lo += chunk {
		hi := lo + chunk
		if hi > capacity {
			hi = capacity
		}
		bands = append(bands, Band{Lo: lo, Hi: hi})
	}
	return bands
}

// Band is a half-open interval [Lo, Hi).
type Band struct {
	Lo, Hi int
}

// Contains reports whether bucket falls inside the band.
func (b Band) Contains(bucket int) bool { return bucket >= b.Lo && bucket < b.Hi }

// RowBands partitions the A index range [0, lenA) into n contiguous,
// disjoint row-bands, one per worker, using the same even-chunking
// convention as the teacher's workerpool.ParallelFor (spec §4.3
// "Optimization").
func RowBands(lenA, n int) []Band {
	if n <= 0 {
		n = 1
	}
	if n > lenA {
		n = lenA
	}
	if n <= 0 {
		return nil
	}
	chunks := lo.Chunk(indexRange(lenA), (lenA+n-1)/n)
	bands := make([]Band, 0, len(chunks))
	for _, c := range chunks {
		if len(c) == 0 {
			continue
		}
		bands = append(bands, Band{Lo: c[0], Hi: c[len(c)-1] + 1})
	}
	return bands
}

func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Choose selects HashBand or RowBand from the estimator's density signal
// (distinct/sampled among the estimator's probe pairs). A low density
// means heavy collisions — few distinct monomials absorb most sampled
// products, the dense power-expansion regime of spec §8 S3/S4 — which
// favors row-band partitioning with a disjoint-merge finish (spec §4.3
// "Optimization"). A high density (most samples distinct) favors
// hash-band partitioning, whose final assembly never merges coefficients.
func Choose(density, threshold float64) Strategy {
	if density <= threshold {
		return RowBand
	}
	return HashBand
}
