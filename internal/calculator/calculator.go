// Package calculator holds the logic behind the four-function calculator:
// parsing the two text inputs, dispatching the chosen operation to mathutil,
// and formatting the result line.
package calculator

import (
	"strings"

	"github.com/roach88/cidemo/internal/canonical"
	"github.com/roach88/cidemo/internal/mathutil"
)

// Operation names a calculator button.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations lists the calculator operations in button order.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

var operationAliases = map[string]Operation{
	"add":      OpAdd,
	"+":        OpAdd,
	"subtract": OpSubtract,
	"sub":      OpSubtract,
	"-":        OpSubtract,
	"multiply": OpMultiply,
	"mul":      OpMultiply,
	"*":        OpMultiply,
	"x":        OpMultiply,
	"divide":   OpDivide,
	"div":      OpDivide,
	"/":        OpDivide,
}

// ParseOperation resolves an operation name or symbol, ignoring case.
func ParseOperation(s string) (Operation, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", newUnknownOperation(s)
	}
	return op, nil
}

// Apply runs op on a and b.
func Apply(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return mathutil.Add(a, b), nil
	case OpSubtract:
		return mathutil.Subtract(a, b), nil
	case OpMultiply:
		return mathutil.Multiply(a, b), nil
	case OpDivide:
		return mathutil.Divide(a, b)
	default:
		return 0, newUnknownOperation(string(op))
	}
}

// Evaluate parses both inputs with ParseNumber and applies op.
//
// Returns ErrInvalidInput if either input has no numeric prefix, and
// propagates mathutil errors (e.g. ErrDivisionByZero) unchanged.
func Evaluate(op Operation, num1, num2 string) (float64, error) {
	a, okA := ParseNumber(num1)
	b, okB := ParseNumber(num2)
	if !okA || !okB {
		return 0, ErrInvalidInput
	}
	return Apply(op, a, b)
}

// FormatResult renders the result line shown under the calculator.
//
//	FormatResult(8) // "Result: 8"
func FormatResult(v float64) string {
	return "Result: " + canonical.FormatNumber(v)
}
