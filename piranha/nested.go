package piranha

import (
	"github.com/piranha-go/piranha/piranha/series"
	"github.com/piranha-go/piranha/piranha/term"
)

// Nested wraps a Series as a coefficient, so a series-of-series can be
// multiplied via ordinary recursion into Multiply (spec §9: "the source's
// behavior when both operands are nested series is via recursion on
// coefficient multiplication... the spec covers this implicitly because
// coefficient multiplication is itself a black-box operation"). Nested
// lives in the root package, not the coefficient package, precisely so it
// can call Multiply directly without an import cycle between coefficient
// and the driver.
type Nested struct {
	S series.Series
}

var _ term.Coefficient = Nested{}

// IsZero reports whether the wrapped series has no non-zero terms.
func (n Nested) IsZero() bool { return n.S.IsZero() }

// AddInPlace merges other's terms into the receiver's series, mutating it
// through the series' backing accumulator (the same "mutate the pointed-to
// state" idiom coefficient.Int uses via *big.Int).
func (n Nested) AddInPlace(other term.Coefficient) error {
	o := other.(Nested)
	return n.S.Table().Merge(o.S.Table())
}

// Multiply recurses into Multiply on the wrapped series, with the default
// configuration.
func (n Nested) Multiply(other term.Coefficient) (term.Coefficient, error) {
	o := other.(Nested)
	out, err := Multiply(n.S, o.S)
	if err != nil {
		return nil, err
	}
	return Nested{S: out}, nil
}

// Negate returns a Nested wrapping the negated series.
func (n Nested) Negate() term.Coefficient { return Nested{S: n.S.Negate()} }

// Clone returns a Nested wrapping an independent deep copy of the series.
func (n Nested) Clone() term.Coefficient { return Nested{S: n.S.Clone()} }
