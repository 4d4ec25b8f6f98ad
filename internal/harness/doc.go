// Package harness runs YAML scenarios against the operation registry.
//
// Each scenario executes in a fresh in-memory history store with
// deterministic record IDs, so the trace read back from the store is
// byte-for-byte reproducible and can be compared against a golden file.
//
// # Scenario Format
//
//	name: arithmetic
//	description: "What this scenario validates"
//	steps:
//	  - invoke: math.add
//	    args: { a: 5, b: 3 }
//	    expect:
//	      result: 8
//	  - invoke: math.divide
//	    args: { a: 5, b: 0 }
//	    expect:
//	      error: Cannot divide by zero
//	      code: DIVISION_BY_ZERO
//	assertions:
//	  - type: trace_contains
//	    operation: math.add
//	    args: { a: 5 }
//	  - type: trace_count
//	    operation: math.divide
//	    count: 1
//	  - type: error_count
//	    count: 1
//	  - type: trace_order
//	    operations: [math.add, math.divide]
//
// Expected results and arguments are compared by their canonical JSON
// encoding, so 8 and 8.0 are equal.
//
// # Golden Files
//
// RunWithGolden stores the trace snapshot in testdata/golden/<name>.golden.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
