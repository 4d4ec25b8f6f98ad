package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cidemo/internal/canonical"
	"github.com/roach88/cidemo/internal/ops"
	"github.com/roach88/cidemo/internal/store"
	"github.com/roach88/cidemo/internal/testutil"
)

// Harness executes one scenario against its own store.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger routes step logs to logger. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with record IDs
// step-001, step-002, ... Assertion and expect failures are reported in
// Result.Errors; the returned error is reserved for failures of the
// harness itself.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequenceIDGenerator("step")),
		store.WithLogger(h.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()
	h.store = st

	ctx := context.Background()
	result := NewResult()

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, err
	}

	records, err := st.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, rec := range records {
		result.Trace = append(result.Trace, traceEventFromRecord(rec))
	}

	for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

// executeSteps invokes each step, records it, and checks its expect clause.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		out, invokeErr := ops.Invoke(step.Invoke, step.Args)

		rec := store.Record{
			Operation: step.Invoke,
			Args:      step.Args,
		}
		if invokeErr != nil {
			rec.ErrorCode = ops.CodeOf(invokeErr)
			rec.ErrorMessage = invokeErr.Error()
		} else {
			rec.Result = out
		}

		rec, err := h.store.Append(ctx, rec)
		if err != nil {
			return fmt.Errorf("step %d (%s): failed to record: %w", i, step.Invoke, err)
		}

		h.logger.Debug("step completed",
			"step", i,
			"operation", step.Invoke,
			"id", rec.ID,
			"error_code", rec.ErrorCode,
		)

		if step.Expect == nil {
			continue
		}
		if msg := checkExpect(step.Expect, rec); msg != "" {
			result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Invoke, msg))
		}
	}
	return nil
}

// checkExpect returns a description of the mismatch, or "" if rec matches.
func checkExpect(e *Expect, rec store.Record) string {
	if e.Failure() {
		if !rec.Failed() {
			return fmt.Sprintf("expected error, got result %s", describe(rec.Result))
		}
		if e.Code != "" && e.Code != rec.ErrorCode {
			return fmt.Sprintf("expected error code %s, got %s", e.Code, rec.ErrorCode)
		}
		if e.Error != "" && e.Error != rec.ErrorMessage {
			return fmt.Sprintf("expected error %q, got %q", e.Error, rec.ErrorMessage)
		}
		return ""
	}

	if rec.Failed() {
		return fmt.Sprintf("expected result %s, got error %s: %s",
			describe(e.Result), rec.ErrorCode, rec.ErrorMessage)
	}
	if !canonicalEqual(e.Result, rec.Result) {
		return fmt.Sprintf("expected result %s, got %s", describe(e.Result), describe(rec.Result))
	}
	return ""
}

// canonicalEqual compares two values by canonical JSON encoding.
// Values that cannot be encoded are never equal.
func canonicalEqual(a, b any) bool {
	ab, err := canonical.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := canonical.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// describe renders v as canonical JSON, falling back to %v.
func describe(v any) string {
	data, err := canonical.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
