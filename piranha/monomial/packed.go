package monomial

import (
	"github.com/piranha-go/piranha/piranha/internal/xmath"
	"github.com/piranha-go/piranha/piranha/term"
)

// packedBits is the width, in bits, allotted to each exponent inside a
// packed word. 8 bits covers exponents up to 255, ample for the dense
// power-expansion benchmarks in spec §8 (S3-S6 products reach exponents
// of at most 48).
const packedBits = 8
const packedPerWord = 64 / packedBits
const packedMask = uint64(1<<packedBits) - 1

// Packed stores exponents bit-packed into one or more uint64 words, one
// exponent per packedBits-wide field. It is the fast path the kernel
// selects via the Packable trait (spec §4.2, §9): the same Add semantics
// as Sparse, but expressed as a handful of word-parallel integer adds
// instead of one add per exponent.
type Packed struct {
	words []uint64
	arity int
}

var _ term.Monomial = Packed{}

// Packable is the trait the kernel type-switches on to select the
// vectorized-style fast path. A Monomial implementation opts in by
// returning a Packed view of itself.
type Packable interface {
	PackedView() (Packed, bool)
}

// NewPacked packs a dense exponent vector.
func NewPacked(exps []int32) Packed {
	nWords := (len(exps) + packedPerWord - 1) / packedPerWord
	if nWords == 0 {
		nWords = 1
	}
	words := make([]uint64, nWords)
	for i, e := range exps {
		w, shift := i/packedPerWord, uint((i%packedPerWord)*packedBits)
		words[w] |= (uint64(uint32(e)) & packedMask) << shift
	}
	return Packed{words: words, arity: len(exps)}
}

// PackedView implements Packable for Packed itself (identity).
func (p Packed) PackedView() (Packed, bool) { return p, true }

// Add performs a word-parallel add across every packed word: each 8-bit
// lane is added independently, mirroring the teacher's block-kernel
// register-blocked accumulate loop but over bit-packed integer lanes
// instead of float32 SIMD lanes.
func (p Packed) Add(other term.Monomial) term.Monomial {
	o := other.(Packed)
	out := make([]uint64, len(p.words))
	for i := range p.words {
		out[i] = addLanes(p.words[i], o.words[i])
	}
	return Packed{words: out, arity: p.arity}
}

// addLanes adds packedPerWord independent 8-bit lanes packed into a and b
// without overflow bleeding between lanes, by adding each lane masked in
// isolation. This is the scalar equivalent of the packed-SIMD add the
// kernel would issue on hardware with native 8-bit lane arithmetic.
func addLanes(a, b uint64) uint64 {
	var out uint64
	for i := 0; i < packedPerWord; i++ {
		shift := uint(i * packedBits)
		la := (a >> shift) & packedMask
		lb := (b >> shift) & packedMask
		out |= ((la + lb) & packedMask) << shift
	}
	return out
}

// Hash mixes every packed word (not per-exponent) into a single value,
// which is cheaper than Sparse.Hash's per-exponent loop.
func (p Packed) Hash() uint64 {
	var h uint64 = 0xcbf29ce484222325
	for _, w := range p.words {
		h = xmath.MixHash(h, w)
	}
	return h
}

// Equal compares packed words directly.
func (p Packed) Equal(other term.Monomial) bool {
	o, ok := other.(Packed)
	if !ok || len(o.words) != len(p.words) || o.arity != p.arity {
		return false
	}
	for i := range p.words {
		if p.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// IsIdentity reports whether every packed word is zero.
func (p Packed) IsIdentity() bool {
	for _, w := range p.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Arity returns the original exponent-vector length.
func (p Packed) Arity() int { return p.arity }

// Exponents unpacks back into a dense []int32, for debugging and tests.
func (p Packed) Exponents() []int32 {
	out := make([]int32, p.arity)
	for i := range out {
		w, shift := i/packedPerWord, uint((i%packedPerWord)*packedBits)
		out[i] = int32((p.words[w] >> shift) & packedMask)
	}
	return out
}

// IdentityPacked returns the identity monomial for the given arity in
// packed form.
func IdentityPacked(arity int) Packed {
	return NewPacked(make([]int32, arity))
}
