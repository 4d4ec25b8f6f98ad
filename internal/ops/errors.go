package ops

import (
	"errors"
	"fmt"
)

// Error codes reported by this package.
const (
	ErrCodeInvalidArgs      = "INVALID_ARGS"
	ErrCodeUnknownOperation = "UNKNOWN_OPERATION"

	// ErrCodeInternal is reported by CodeOf for errors that carry no code.
	ErrCodeInternal = "INTERNAL"
)

// Error reports a bad operation name or argument.
type Error struct {
	Code      string
	Operation string
	Param     string
	Message   string
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s: %s", e.Operation, e.Param, e.Message)
	}
	return e.Message
}

// ErrorCode returns the error code.
func (e *Error) ErrorCode() string {
	return e.Code
}

// coded is implemented by every error type in this module that carries a code.
type coded interface {
	ErrorCode() string
}

// CodeOf returns the code carried by err or anything it wraps.
// Returns "" for nil and ErrCodeInternal for uncoded errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ErrCodeInternal
}
