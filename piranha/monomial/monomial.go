// Package monomial provides concrete implementations of term.Monomial: a
// general sparse exponent vector and a packed, fixed-width variant whose
// kernel fast path vectorizes cleanly.
package monomial

import (
	"github.com/piranha-go/piranha/piranha/internal/xmath"
	"github.com/piranha-go/piranha/piranha/term"
)

// Sparse is a general-purpose exponent vector, one int32 per symbol.
type Sparse []int32

var _ term.Monomial = Sparse(nil)

// Add returns the element-wise sum.
func (s Sparse) Add(other term.Monomial) term.Monomial {
	o := other.(Sparse)
	out := make(Sparse, len(s))
	for i := range s {
		out[i] = s[i] + o[i]
	}
	return out
}

// Hash mixes every exponent into a single 64-bit value.
func (s Sparse) Hash() uint64 {
	var h uint64 = 0xcbf29ce484222325
	for _, e := range s {
		h = xmath.MixHash(h, uint64(uint32(e)))
	}
	return h
}

// Equal reports element-wise equality.
func (s Sparse) Equal(other term.Monomial) bool {
	o, ok := other.(Sparse)
	if !ok || len(o) != len(s) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// IsIdentity reports whether every exponent is zero.
func (s Sparse) IsIdentity() bool {
	for _, e := range s {
		if e != 0 {
			return false
		}
	}
	return true
}

// Arity returns the number of exponent slots.
func (s Sparse) Arity() int { return len(s) }

// Identity returns the identity monomial (all-zero exponents) for the
// given arity.
func Identity(arity int) Sparse {
	return make(Sparse, arity)
}
