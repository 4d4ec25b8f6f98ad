package cli

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/roach88/cidemo/internal/calculator"
	"github.com/roach88/cidemo/internal/canonical"
	"github.com/roach88/cidemo/internal/ops"
	"github.com/roach88/cidemo/internal/store"
)

// OperationResult is the JSON payload of a successful operation.
type OperationResult struct {
	Operation string         `json:"operation"`
	Args      map[string]any `json:"args"`
	Result    any            `json:"result"`
	ID        string         `json:"id,omitempty"` // history record, when recorded
}

// runOperation invokes a registry operation, records it to history when a
// database is configured, and writes the outcome. render produces the text
// form of a successful result.
func runOperation(cmd *cobra.Command, opts *RootOptions, name string, args map[string]any, render func(any) string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := opts.formatter(cmd)

	result, invokeErr := ops.Invoke(name, args)
	opts.Logger.Debug("operation invoked", "operation", name, "error", invokeErr)

	id := recordOperation(ctx, opts, name, args, result, invokeErr)

	if invokeErr != nil {
		return reportOperationError(out, invokeErr)
	}

	return out.Render(OperationResult{
		Operation: name,
		Args:      jsonSafeArgs(args),
		Result:    jsonSafe(result),
		ID:        id,
	}, render(result))
}

// reportOperationError writes a coded operation failure and returns the
// matching exit error.
func reportOperationError(out *OutputFormatter, opErr error) error {
	if err := out.Error(ops.CodeOf(opErr), opErr.Error(), nil); err != nil {
		return err
	}
	return reportedError(opErr.Error())
}

// jsonSafe replaces NaN and the infinities, which JSON cannot carry, with
// their text form ("Infinity").
func jsonSafe(v any) any {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return canonical.FormatNumber(f)
	}
	return v
}

func jsonSafeArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for name, v := range args {
		out[name] = jsonSafe(v)
	}
	return out
}

// recordOperation appends the call to history and returns the record ID.
// Recording problems are logged, never fatal: the operation already ran.
func recordOperation(ctx context.Context, opts *RootOptions, name string, args map[string]any, result any, invokeErr error) string {
	if opts.Database == "" {
		return ""
	}

	st, err := opts.openStore()
	if err != nil {
		opts.Logger.Warn("history not recorded", "error", err)
		return ""
	}
	defer st.Close()

	rec := store.Record{Operation: name, Args: args, Result: result}
	if invokeErr != nil {
		rec.Result = nil
		rec.ErrorCode = ops.CodeOf(invokeErr)
		rec.ErrorMessage = invokeErr.Error()
	}

	rec, err = st.Append(ctx, rec)
	if err != nil {
		opts.Logger.Warn("history not recorded", "operation", name, "error", err)
		return ""
	}
	return rec.ID
}

// formatValue renders a result for text output: numbers in JavaScript
// form, strings verbatim, anything else as canonical JSON.
func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return canonical.FormatNumber(val)
	case string:
		return val
	}
	return describeJSON(v)
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <operation> <num1> <num2>",
		Short: "Evaluate the calculator form",
		Long: `Evaluate two operands the way the calculator form does.

Operands are parsed leniently: leading whitespace is skipped and the
longest numeric prefix is used ("12abc" is 12). Operations are add,
subtract, multiply and divide, or one of + - * / x sub mul div.

Exit codes:
  0 - Result printed
  1 - Invalid numbers, unknown operation, or division by zero
  2 - Command error

Examples:
  cidemo calc add 5 3
  cidemo calc / 1 0
  cidemo calc multiply 2.5 4 --format json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, rootOpts, "calculator.evaluate", map[string]any{
				"operation": args[0],
				"num1":      args[1],
				"num2":      args[2],
			}, func(v any) string {
				f, _ := v.(float64)
				return calculator.FormatResult(f)
			})
		},
	}
}

// NewPercentCommand creates the percent command.
func NewPercentCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "percent <value> <total>",
		Short: "Express value as a percentage of total",
		Example: `  cidemo percent 25 200
  cidemo percent 1 3 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, okValue := calculator.ParseNumber(args[0])
			total, okTotal := calculator.ParseNumber(args[1])
			if !okValue || !okTotal {
				rootOpts.Logger.Debug("percent operands rejected", "value", args[0], "total", args[1])
				return reportOperationError(rootOpts.formatter(cmd), calculator.ErrInvalidInput)
			}

			return runOperation(cmd, rootOpts, "math.percentage", map[string]any{
				"value": value,
				"total": total,
			}, func(v any) string {
				return formatValue(v) + "%"
			})
		},
	}
}

// TextOptions holds flags for the text truncate command.
type TextOptions struct {
	*RootOptions
	Max int
}

// NewTextCommand creates the text command and its subcommands.
func NewTextCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TextOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "text",
		Short: "String utilities",
	}

	simple := func(use, short, operation string) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <input>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOperation(cmd, rootOpts, operation, map[string]any{"s": args[0]}, formatValue)
			},
		}
	}

	cmd.AddCommand(simple("capitalize", "Upper-case the first character, lower-case the rest", "text.capitalize"))
	cmd.AddCommand(simple("slugify", "Convert to a lower-case, hyphen-delimited URL token", "text.slugify"))
	cmd.AddCommand(simple("reverse", "Reverse the characters", "text.reverse"))

	truncate := &cobra.Command{
		Use:   "truncate <input>",
		Short: `Cut to --max characters and append "..."`,
		Long: `Cut input to --max characters and append "...".

Input no longer than --max is returned unchanged. A negative --max
counts from the end. The default comes from truncate_length in the
config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxLength := opts.Config.TruncateLength
			if cmd.Flags().Changed("max") {
				maxLength = opts.Max
			}
			return runOperation(cmd, rootOpts, "text.truncate", map[string]any{
				"s":          args[0],
				"max_length": maxLength,
			}, formatValue)
		},
	}
	truncate.Flags().IntVar(&opts.Max, "max", 0, "maximum length (default from config)")
	cmd.AddCommand(truncate)

	return cmd
}
