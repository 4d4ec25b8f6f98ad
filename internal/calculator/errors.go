package calculator

import "fmt"

// ErrorCode categorizes calculator input failures.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates an input with no numeric prefix.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeUnknownOperation indicates an operation name that is not a button.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
)

// InputError reports a problem with what the user typed or picked.
// Error returns Message unchanged for display.
type InputError struct {
	Code    ErrorCode
	Message string
}

// ErrInvalidInput is returned by Evaluate when either operand is not a number.
var ErrInvalidInput = &InputError{Code: ErrCodeInvalidInput, Message: "Please enter valid numbers"}

func (e *InputError) Error() string {
	return e.Message
}

// ErrorCode returns the code as a plain string.
func (e *InputError) ErrorCode() string {
	return string(e.Code)
}

// Is reports whether target is an InputError with the same code.
func (e *InputError) Is(target error) bool {
	t, ok := target.(*InputError)
	return ok && t.Code == e.Code
}

func newUnknownOperation(name string) *InputError {
	return &InputError{
		Code:    ErrCodeUnknownOperation,
		Message: fmt.Sprintf("unknown operation %q", name),
	}
}
