package harness

import "github.com/roach88/cidemo/internal/store"

// TraceEvent is one recorded invocation, as read back from the store.
type TraceEvent struct {
	ID           string         `json:"id"`
	Seq          int64          `json:"seq"`
	Operation    string         `json:"operation"`
	Args         map[string]any `json:"args"`
	Result       any            `json:"result,omitempty"`
	ErrorCode    string         `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Failed reports whether the invocation returned an error.
func (e TraceEvent) Failed() bool {
	return e.ErrorCode != ""
}

func traceEventFromRecord(rec store.Record) TraceEvent {
	return TraceEvent{
		ID:           rec.ID,
		Seq:          rec.Seq,
		Operation:    rec.Operation,
		Args:         rec.Args,
		Result:       rec.Result,
		ErrorCode:    rec.ErrorCode,
		ErrorMessage: rec.ErrorMessage,
	}
}

// canonicalMap drops empty optional fields so the golden form matches
// the JSON tags.
func (e TraceEvent) canonicalMap() map[string]any {
	m := map[string]any{
		"id":        e.ID,
		"seq":       e.Seq,
		"operation": e.Operation,
		"args":      e.Args,
	}
	if e.Result != nil {
		m["result"] = e.Result
	}
	if e.ErrorCode != "" {
		m["error_code"] = e.ErrorCode
	}
	if e.ErrorMessage != "" {
		m["error_message"] = e.ErrorMessage
	}
	return m
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every step in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
