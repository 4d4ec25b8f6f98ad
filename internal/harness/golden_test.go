package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs the checked-in scenarios and compares their traces
// with testdata/golden. Regenerate with:
//
//	go test ./internal/harness -run TestScenarios -update
func TestScenarios(t *testing.T) {
	for _, name := range []string{"arithmetic", "text", "calculator"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario("testdata/" + name + ".yaml")
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "golden file is named after the scenario")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot(t *testing.T) {
	result := NewResult()
	result.Trace = []TraceEvent{
		{ID: "step-001", Seq: 1, Operation: "text.truncate",
			Args: map[string]any{"s": "<b>", "max_length": 1.0}, Result: "<..."},
		{ID: "step-002", Seq: 2, Operation: "math.divide",
			Args: map[string]any{"a": 1.0, "b": 0.0}, ErrorCode: "DIVISION_BY_ZERO", ErrorMessage: "Cannot divide by zero"},
	}

	data, err := Snapshot("snap", result)
	require.NoError(t, err)

	want := `{"scenario_name":"snap","trace":[` +
		`{"args":{"max_length":1,"s":"<b>"},"id":"step-001","operation":"text.truncate","result":"<...","seq":1},` +
		`{"args":{"a":1,"b":0},"error_code":"DIVISION_BY_ZERO","error_message":"Cannot divide by zero","id":"step-002","operation":"math.divide","seq":2}]}`
	assert.Equal(t, want, string(data))
}

func TestSnapshot_EmptyTrace(t *testing.T) {
	data, err := Snapshot("empty", NewResult())
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"empty","trace":[]}`, string(data))
}

func TestAssertGolden_FromResult(t *testing.T) {
	scenario, err := LoadScenario("testdata/text.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	require.NoError(t, AssertGolden(t, "text", result))
}
