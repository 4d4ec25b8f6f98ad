package mathutil

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"two positive numbers", 2, 3, 5},
		{"negative numbers", -2, -3, -5},
		{"positive and negative", 5, -3, 2},
		{"fractions", 1.5, 2.25, 3.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Add(tt.a, tt.b))
		})
	}
}

func TestSubtract(t *testing.T) {
	assert.Equal(t, 2.0, Subtract(5, 3))
	assert.Equal(t, -2.0, Subtract(-5, -3))
	assert.Equal(t, 7.0, Subtract(10, 3))
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, 6.0, Multiply(2, 3))
	assert.Equal(t, 0.0, Multiply(5, 0))
	assert.Equal(t, -6.0, Multiply(-2, 3))
	assert.Equal(t, 20.0, Multiply(4, 5))
}

func TestDivide(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"two positive numbers", 6, 2, 3},
		{"negative dividend", -6, 2, -3},
		{"fractional result", 10, 4, 2.5},
		{"zero dividend", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Divide(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDivide_ByZero(t *testing.T) {
	for _, zero := range []float64{0, math.Copysign(0, -1)} {
		t.Run(fmt.Sprintf("divisor %v", zero), func(t *testing.T) {
			_, err := Divide(5, zero)
			require.Error(t, err)
			assert.EqualError(t, err, "Cannot divide by zero")
			assert.True(t, IsDivisionByZero(err))
			assert.False(t, IsZeroTotal(err))
			assert.ErrorIs(t, err, ErrDivisionByZero)
		})
	}
}

func TestDivide_NaNDivisorIsNotZero(t *testing.T) {
	got, err := Divide(1, math.NaN())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name         string
		value, total float64
		expected     float64
	}{
		{"quarter", 50, 200, 25},
		{"whole", 100, 100, 100},
		{"over one hundred", 300, 200, 150},
		{"zero value", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePercentage(tt.value, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculatePercentage_Unrounded(t *testing.T) {
	got, err := CalculatePercentage(1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 33.333333, got, 1e-6)
	assert.NotEqual(t, 33.33, got)
}

func TestCalculatePercentage_ZeroTotal(t *testing.T) {
	_, err := CalculatePercentage(50, 0)
	require.Error(t, err)
	assert.EqualError(t, err, "Total cannot be zero")
	assert.True(t, IsZeroTotal(err))
	assert.ErrorIs(t, err, ErrZeroTotal)
	assert.NotErrorIs(t, err, ErrDivisionByZero)
}

func TestArithmeticError_Wrapped(t *testing.T) {
	_, err := Divide(1, 0)
	wrapped := fmt.Errorf("evaluate: %w", err)

	assert.True(t, IsDivisionByZero(wrapped))
	assert.True(t, errors.Is(wrapped, ErrDivisionByZero))

	var ae *ArithmeticError
	require.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, ErrCodeDivisionByZero, ae.Code)
	assert.Equal(t, "DIVISION_BY_ZERO", ae.ErrorCode())
}

func TestIsHelpers_NonArithmeticError(t *testing.T) {
	err := errors.New("Cannot divide by zero")
	assert.False(t, IsDivisionByZero(err))
	assert.False(t, IsZeroTotal(nil))
}

// sampleOperands returns a deterministic spread of finite operands.
func sampleOperands(n int) []float64 {
	r := rand.New(rand.NewSource(42))
	out := []float64{0, 1, -1, 0.1, 0.2, 1e-9, -1e9, 123456.789}
	for len(out) < n {
		out = append(out, (r.Float64()-0.5)*math.Pow(10, float64(r.Intn(12)-4)))
	}
	return out
}

func TestAdd_Commutative(t *testing.T) {
	vals := sampleOperands(64)
	for _, a := range vals {
		for _, b := range vals {
			if Add(a, b) != Add(b, a) {
				t.Fatalf("Add(%v, %v) != Add(%v, %v)", a, b, b, a)
			}
		}
	}
}

func TestDivide_InverseOfMultiply(t *testing.T) {
	vals := sampleOperands(64)
	for _, a := range vals {
		for _, b := range vals {
			if b == 0 {
				continue
			}
			q, err := Divide(a, b)
			require.NoError(t, err)
			tol := 1e-9 * math.Max(1, math.Abs(a))
			if math.Abs(q*b-a) > tol {
				t.Fatalf("Divide(%v, %v) * %v = %v, want %v", a, b, b, q*b, a)
			}
		}
	}
}
