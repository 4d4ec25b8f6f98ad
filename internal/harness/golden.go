package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cidemo/internal/canonical"
)

// Snapshot returns the canonical JSON trace snapshot for a scenario run.
// This is the exact content of a golden file.
func Snapshot(name string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		trace[i] = event.canonicalMap()
	}

	return canonical.Marshal(map[string]any{
		"scenario_name": name,
		"trace":         trace,
	})
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
