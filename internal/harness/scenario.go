package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of operation invocations plus trace assertions.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are invoked in order. Every step is recorded, including failures.
	Steps []Step `yaml:"steps"`

	// Assertions run against the full trace after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step invokes one registry operation.
type Step struct {
	// Invoke is the operation name, e.g. "math.add".
	Invoke string `yaml:"invoke"`

	// Args are passed to the operation unchanged.
	Args map[string]any `yaml:"args"`

	// Expect, if set, is checked against the recorded outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome of a step.
// A step expects success when neither Error nor Code is set.
type Expect struct {
	// Result is the expected return value.
	Result any `yaml:"result,omitempty"`

	// Error is the exact expected error message.
	Error string `yaml:"error,omitempty"`

	// Code is the expected error code, e.g. "DIVISION_BY_ZERO".
	Code string `yaml:"code,omitempty"`
}

// Failure reports whether the step is expected to fail.
func (e *Expect) Failure() bool {
	return e.Error != "" || e.Code != ""
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Operation is used by trace_contains and trace_count.
	Operation string `yaml:"operation,omitempty"`

	// Args is a subset match for trace_contains.
	Args map[string]any `yaml:"args,omitempty"`

	// Count is used by trace_count and error_count.
	Count int `yaml:"count,omitempty"`

	// Code narrows error_count to one error code.
	Code string `yaml:"code,omitempty"`

	// Operations is the expected relative order for trace_order.
	Operations []string `yaml:"operations,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertErrorCount    = "error_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes scenario YAML and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Invoke == "" {
			return fmt.Errorf("steps[%d]: invoke is required", i)
		}
		if step.Args == nil {
			return fmt.Errorf("steps[%d]: args is required (use empty map if no args)", i)
		}
		if e := step.Expect; e != nil {
			if e.Failure() && e.Result != nil {
				return fmt.Errorf("steps[%d].expect: result cannot be combined with error or code", i)
			}
			if !e.Failure() && e.Result == nil {
				return fmt.Errorf("steps[%d].expect: one of result, error or code is required", i)
			}
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Operations) == 0 {
			return fmt.Errorf("assertions[%d]: operations list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertErrorCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for error_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
