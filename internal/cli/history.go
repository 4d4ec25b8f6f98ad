package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cidemo/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit     int
	Operation string
	Clear     bool
}

// HistoryResult holds the history command output.
type HistoryResult struct {
	Records []store.Record `json:"records"`
	Total   int64          `json:"total"`
	Cleared int64          `json:"cleared,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded operations",
		Long: `Show operations recorded to the history database, oldest first.

Requires --db or a database in the config file.

Examples:
  cidemo history --db ./cidemo.db
  cidemo history --db ./cidemo.db --op math.divide --limit 5
  cidemo history --db ./cidemo.db --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show only the most recent N records")
	cmd.Flags().StringVar(&opts.Operation, "op", "", "filter by operation name")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "delete all records")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.Clear {
		n, err := st.Clear(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to clear history", err)
		}
		return out.Render(HistoryResult{Records: []store.Record{}, Cleared: n},
			fmt.Sprintf("Cleared %d record(s).", n))
	}

	records, err := st.List(ctx, store.ListOptions{Operation: opts.Operation, Limit: opts.Limit})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	return out.Render(HistoryResult{Records: records, Total: total}, historyText(records, total))
}

// historyText renders one line per record.
func historyText(records []store.Record, total int64) string {
	if len(records) == 0 {
		return "No records found."
	}

	var b strings.Builder
	for _, rec := range records {
		outcome := "= " + formatValue(rec.Result)
		if rec.Failed() {
			outcome = fmt.Sprintf("! %s: %s", rec.ErrorCode, rec.ErrorMessage)
		}
		fmt.Fprintf(&b, "%4d  %-20s %s %s\n", rec.Seq, rec.Operation, describeJSON(rec.Args), outcome)
	}
	fmt.Fprintf(&b, "\n%d of %d record(s)", len(records), total)
	return b.String()
}
