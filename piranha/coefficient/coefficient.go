// Package coefficient provides the concrete term.Coefficient
// implementations the multiplier ships with: arbitrary-precision integer,
// rational, and float64 rings (spec §3, §6).
package coefficient

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"

	"github.com/piranha-go/piranha/piranha/term"
)

// bigfftThreshold is the operand bit-length above which Int.Multiply
// switches from math/big's default Karatsuba/Toom-Cook multiply to
// bigfft's Schönhage-Strassen implementation. Chosen generously above the
// crossover bigfft documents for its own benchmarks, so small coefficients
// never pay FFT setup cost.
const bigfftThreshold = 1 << 15

// Int is an arbitrary-precision integer coefficient.
type Int struct{ V *big.Int }

var _ term.Coefficient = Int{}

// NewInt wraps an int64 as an Int coefficient.
func NewInt(v int64) Int { return Int{V: big.NewInt(v)} }

// IsZero reports whether the value is zero.
func (c Int) IsZero() bool { return c.V == nil || c.V.Sign() == 0 }

// AddInPlace adds other into the receiver.
func (c Int) AddInPlace(other term.Coefficient) error {
	o := other.(Int)
	c.V.Add(c.V, o.V)
	return nil
}

// Multiply returns a new Int equal to c * other, routing through bigfft
// once both operands are large enough for it to pay off.
func (c Int) Multiply(other term.Coefficient) (term.Coefficient, error) {
	o := other.(Int)
	if c.V.BitLen() >= bigfftThreshold && o.V.BitLen() >= bigfftThreshold {
		return Int{V: bigfft.Mul(c.V, o.V)}, nil
	}
	return Int{V: new(big.Int).Mul(c.V, o.V)}, nil
}

// Negate returns -c.
func (c Int) Negate() term.Coefficient { return Int{V: new(big.Int).Neg(c.V)} }

// Clone returns an independent copy.
func (c Int) Clone() term.Coefficient { return Int{V: new(big.Int).Set(c.V)} }

// Rational is an arbitrary-precision rational coefficient.
type Rational struct{ V *big.Rat }

var _ term.Coefficient = Rational{}

// NewRational builds a Rational from a numerator and denominator.
func NewRational(num, den int64) Rational { return Rational{V: big.NewRat(num, den)} }

// IsZero reports whether the value is zero.
func (c Rational) IsZero() bool { return c.V == nil || c.V.Sign() == 0 }

// AddInPlace adds other into the receiver.
func (c Rational) AddInPlace(other term.Coefficient) error {
	o := other.(Rational)
	c.V.Add(c.V, o.V)
	return nil
}

// Multiply returns a new Rational equal to c * other.
func (c Rational) Multiply(other term.Coefficient) (term.Coefficient, error) {
	o := other.(Rational)
	return Rational{V: new(big.Rat).Mul(c.V, o.V)}, nil
}

// Negate returns -c.
func (c Rational) Negate() term.Coefficient { return Rational{V: new(big.Rat).Neg(c.V)} }

// Clone returns an independent copy.
func (c Rational) Clone() term.Coefficient { return Rational{V: new(big.Rat).Set(c.V)} }

// Float64 is a floating-point coefficient. Accumulation order affects the
// bit pattern of the result when the ring is not associative under
// rounding (spec §5) — callers requiring bit-identical results across
// thread counts must use Int or Rational instead.
type Float64 float64

var _ term.Coefficient = new(Float64)

// IsZero reports whether the value is exactly zero.
func (c *Float64) IsZero() bool { return *c == 0 }

// AddInPlace adds other into the receiver.
func (c *Float64) AddInPlace(other term.Coefficient) error {
	o := other.(*Float64)
	*c += *o
	return nil
}

// Multiply returns a new Float64 equal to c * other.
func (c *Float64) Multiply(other term.Coefficient) (term.Coefficient, error) {
	o := other.(*Float64)
	r := *c * *o
	return &r, nil
}

// Negate returns -c.
func (c *Float64) Negate() term.Coefficient {
	r := -*c
	return &r
}

// Clone returns an independent copy.
func (c *Float64) Clone() term.Coefficient {
	r := *c
	return &r
}

// NewFloat64 builds a *Float64 coefficient from a float64.
func NewFloat64(v float64) *Float64 {
	f := Float64(v)
	return &f
}
