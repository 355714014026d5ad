// Package term defines the capability interfaces the multiplier core
// consumes from its coefficient and monomial collaborators (spec §6), plus
// the Term pair itself.
package term

// Coefficient is a value from a commutative ring: integer, rational,
// floating-point, or a nested series. Implementations must treat Multiply
// and Clone as pure (no mutation of the receiver or argument); AddInPlace
// is the sole mutating operation.
type Coefficient interface {
	// IsZero reports whether the value is the ring's additive identity.
	IsZero() bool
	// AddInPlace adds other into the receiver, mutating it.
	AddInPlace(other Coefficient) error
	// Multiply returns a new value equal to the receiver times other.
	Multiply(other Coefficient) (Coefficient, error)
	// Negate returns the additive inverse.
	Negate() Coefficient
	// Clone returns an independent copy.
	Clone() Coefficient
}

// Monomial is an exponent vector over a fixed, externally-owned SymbolSet.
// Monomials carry no symbol names of their own.
type Monomial interface {
	// Add returns the element-wise sum of the receiver and other.
	Add(other Monomial) Monomial
	// Hash returns a well-mixed hash of the exponent vector.
	Hash() uint64
	// Equal reports element-wise equality.
	Equal(other Monomial) bool
	// IsIdentity reports whether every exponent is zero.
	IsIdentity() bool
	// Arity returns the number of exponent slots (symbol-set size).
	Arity() int
}

// Term is a single (coefficient, monomial) pair. A Term held by a Series
// always has a non-zero Coef.
type Term struct {
	Coef Coefficient
	Mono Monomial
}

// Filter is an optional predicate evaluated on a freshly-produced term-pair
// product before it reaches the accumulator; returning false discards the
// product without accumulator contact (spec §4.2).
type Filter func(Term) bool
