package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cidemo/internal/canonical"
	"github.com/roach88/cidemo/internal/ops"
	"github.com/roach88/cidemo/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Operation string // optional - specific operation only
	Limit     int
}

// ReplayRecordResult holds the replay result for a single record.
type ReplayRecordResult struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Operation string `json:"operation"`
	Match     bool   `json:"match"`
	Recorded  string `json:"recorded"`
	Replayed  string `json:"replayed"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Records  []ReplayRecordResult `json:"records"`
	Total    int                  `json:"total"`
	AllMatch bool                 `json:"all_match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded operations and verify determinism",
		Long: `Re-invoke every recorded operation and compare the outcome with
what was recorded. Results are compared by canonical JSON and errors
by error code.

Exit codes:
  0 - Every record reproduced
  1 - At least one record produced a different outcome
  2 - Command error (no database, etc.)

Examples:
  cidemo replay --db ./cidemo.db
  cidemo replay --db ./cidemo.db --op math.divide
  cidemo replay --db ./cidemo.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Operation, "op", "", "replay one operation only")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "replay only the most recent N records")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := replayRecords(cmd.Context(), st, store.ListOptions{Operation: opts.Operation, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay history", err)
	}

	for _, r := range result.Records {
		if !r.Match {
			opts.Logger.Warn("replay mismatch", "id", r.ID, "operation", r.Operation,
				"recorded", r.Recorded, "replayed", r.Replayed)
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// replayRecords re-invokes each matching record.
func replayRecords(ctx context.Context, st *store.Store, filter store.ListOptions) (ReplayResult, error) {
	records, err := st.List(ctx, filter)
	if err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{
		Records:  make([]ReplayRecordResult, 0, len(records)),
		Total:    len(records),
		AllMatch: true,
	}

	for _, rec := range records {
		recorded, err := outcome(rec.Result, rec.ErrorCode)
		if err != nil {
			return ReplayResult{}, fmt.Errorf("record %s: %w", rec.ID, err)
		}

		value, invokeErr := ops.Invoke(rec.Operation, rec.Args)
		code := ""
		if invokeErr != nil {
			value = nil
			code = ops.CodeOf(invokeErr)
		}
		replayed, err := outcome(value, code)
		if err != nil {
			// A value the store could never have held is a mismatch.
			replayed = fmt.Sprintf("unencodable %v", value)
		}

		r := ReplayRecordResult{
			ID:        rec.ID,
			Seq:       rec.Seq,
			Operation: rec.Operation,
			Match:     recorded == replayed,
			Recorded:  recorded,
			Replayed:  replayed,
		}
		result.Records = append(result.Records, r)
		if !r.Match {
			result.AllMatch = false
		}
	}

	return result, nil
}

// outcome renders a call outcome as "error CODE" or the canonical result.
func outcome(value any, code string) (string, error) {
	if code != "" {
		return "error " + code, nil
	}
	data, err := canonical.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllMatch {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "replay produced different outcomes",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllMatch {
		return reportedError("replay produced different outcomes")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No records found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d record(s)\n", result.Total)
	fmt.Fprintln(w)

	for _, r := range result.Records {
		if r.Match && !verbose {
			continue
		}
		status := "✓"
		if !r.Match {
			status = "✗"
		}
		fmt.Fprintf(w, "%s [%d] %s\n", status, r.Seq, r.Operation)
		if !r.Match {
			fmt.Fprintf(w, "  Recorded: %s\n", r.Recorded)
			fmt.Fprintf(w, "  Replayed: %s\n", r.Replayed)
		}
	}

	if result.AllMatch {
		fmt.Fprintln(w, "✓ All records reproduced")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return reportedError("replay produced different outcomes")
}
