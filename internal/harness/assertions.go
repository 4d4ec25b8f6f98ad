package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		outcome := describe(event.Result)
		if event.Failed() {
			outcome = "error " + event.ErrorCode
		}
		fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Operation, describe(event.Args), outcome)
	}

	return buf.String()
}

// assertTraceContains checks if the trace contains an invocation of the
// operation whose args include every key in assertion.Args.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Operation == assertion.Operation && matchArgs(event.Args, assertion.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("operation %s with args %s", assertion.Operation, describe(assertion.Args)),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if operations first appear in the specified order.
// Intervening invocations are allowed.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Operation]; !seen {
			positions[event.Operation] = i + 1 // 1-indexed for readability
		}
	}

	for _, op := range assertion.Operations {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all operations present: %v", assertion.Operations),
				Actual:   fmt.Sprintf("missing operation: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Operations); i++ {
		prev := assertion.Operations[i-1]
		curr := assertion.Operations[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("operations in order: %v", assertion.Operations),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that the operation was invoked exactly Count times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Operation == assertion.Operation {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Operation),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertErrorCount checks the number of failed invocations, optionally
// restricted to one error code.
func assertErrorCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Failed() && (assertion.Code == "" || event.ErrorCode == assertion.Code) {
			count++
		}
	}

	if count != assertion.Count {
		what := "errors"
		if assertion.Code != "" {
			what = assertion.Code + " errors"
		}
		return &AssertionError{
			Type:     AssertErrorCount,
			Expected: fmt.Sprintf("%d %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d %s", count, what),
			Trace:    trace,
		}
	}

	return nil
}

// matchArgs checks if actual args contain all expected args (subset match).
// Extra keys in actual are ignored.
func matchArgs(actual, expected map[string]any) bool {
	for key, expectedVal := range expected {
		actualVal, exists := actual[key]
		if !exists {
			return false
		}
		if !canonicalEqual(actualVal, expectedVal) {
			return false
		}
	}
	return true
}

// EvaluateAssertions evaluates all assertions against the trace.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(trace []TraceEvent, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(trace, assertion)
		case AssertErrorCount:
			err = assertErrorCount(trace, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
