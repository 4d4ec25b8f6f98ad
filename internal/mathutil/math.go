// Package mathutil provides the arithmetic helpers behind the calculator.
//
// Every function is pure and safe for concurrent use. Only Divide and
// CalculatePercentage can fail; both return an *ArithmeticError whose
// message is meant to be shown to the user verbatim.
package mathutil

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a * b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a / b using IEEE 754 division.
// Returns ErrDivisionByZero when b is zero (either sign).
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// CalculatePercentage returns value as a percentage of total.
// The result is not rounded; callers round for display.
// Returns ErrZeroTotal when total is zero.
func CalculatePercentage(value, total float64) (float64, error) {
	if total == 0 {
		return 0, ErrZeroTotal
	}
	return (value / total) * 100, nil
}
