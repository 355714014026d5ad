package coefficient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntAddInPlace(t *testing.T) {
	a := NewInt(2)
	require.NoError(t, a.AddInPlace(NewInt(3)))
	require.Equal(t, int64(5), a.V.Int64())
}

func TestIntMultiply(t *testing.T) {
	a, b := NewInt(6), NewInt(7)
	out, err := a.Multiply(b)
	require.NoError(t, err)
	require.Equal(t, int64(42), out.(Int).V.Int64())
}

func TestIntNegateAndIsZero(t *testing.T) {
	a := NewInt(5)
	require.False(t, a.IsZero())
	n := a.Negate().(Int)
	require.Equal(t, int64(-5), n.V.Int64())
}

func TestIntCloneIsIndependent(t *testing.T) {
	a := NewInt(5)
	c := a.Clone().(Int)
	require.NoError(t, c.AddInPlace(NewInt(1)))
	require.Equal(t, int64(5), a.V.Int64())
	require.Equal(t, int64(6), c.V.Int64())
}

func TestRationalArithmetic(t *testing.T) {
	a := NewRational(1, 2)
	b := NewRational(1, 3)
	out, err := a.Multiply(b)
	require.NoError(t, err)
	require.Equal(t, "1/6", out.(Rational).V.RatString())
}

func TestFloat64AddInPlace(t *testing.T) {
	a := NewFloat64(1.5)
	require.NoError(t, a.AddInPlace(NewFloat64(2.5)))
	require.Equal(t, 4.0, float64(*a))
}

func TestFloat64IsZero(t *testing.T) {
	z := NewFloat64(0)
	require.True(t, z.IsZero())
}
