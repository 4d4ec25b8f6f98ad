package mathutil

import "errors"

// ErrorCode categorizes arithmetic failures.
type ErrorCode string

const (
	// ErrCodeDivisionByZero indicates a zero divisor.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeZeroTotal indicates a percentage of a zero total.
	ErrCodeZeroTotal ErrorCode = "ZERO_TOTAL"
)

// ArithmeticError is returned by the partial operations in this package.
//
// Error returns Message unchanged so that a UI can display it as-is.
type ArithmeticError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is the user-facing description.
	Message string
}

// Sentinel errors. Compare with errors.Is; matching is by Code.
var (
	ErrDivisionByZero = &ArithmeticError{Code: ErrCodeDivisionByZero, Message: "Cannot divide by zero"}
	ErrZeroTotal      = &ArithmeticError{Code: ErrCodeZeroTotal, Message: "Total cannot be zero"}
)

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	return e.Message
}

// ErrorCode returns the code as a plain string.
func (e *ArithmeticError) ErrorCode() string {
	return string(e.Code)
}

// Is reports whether target is an ArithmeticError with the same code.
func (e *ArithmeticError) Is(target error) bool {
	t, ok := target.(*ArithmeticError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsDivisionByZero returns true if err is, or wraps, a division by zero.
func IsDivisionByZero(err error) bool {
	return hasCode(err, ErrCodeDivisionByZero)
}

// IsZeroTotal returns true if err is, or wraps, a zero-total percentage.
func IsZeroTotal(err error) bool {
	return hasCode(err, ErrCodeZeroTotal)
}

func hasCode(err error, code ErrorCode) bool {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
