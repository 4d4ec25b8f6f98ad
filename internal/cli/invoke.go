package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cidemo/internal/canonical"
	"github.com/roach88/cidemo/internal/ops"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Args string
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <operation>",
		Short: "Invoke any registered operation",
		Long: `Invoke any registered operation with JSON arguments.

Run "cidemo ops" to list operations and their parameters. The result
is printed as canonical JSON.

Examples:
  cidemo invoke math.add --args '{"a":2,"b":3}'
  cidemo invoke text.truncate --args '{"s":"Hello World","max_length":5}'
  cidemo invoke calculator.evaluate --args '{"operation":"/","num1":"1","num2":"0"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invokeOperation(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "{}", "operation arguments as JSON")

	return cmd
}

func invokeOperation(opts *InvokeOptions, name string, cmd *cobra.Command) error {
	var argsMap map[string]any
	if err := json.Unmarshal([]byte(opts.Args), &argsMap); err != nil {
		return WrapExitError(ExitCommandError, "invalid --args JSON", err)
	}
	if argsMap == nil {
		argsMap = map[string]any{}
	}

	return runOperation(cmd, opts.RootOptions, name, argsMap, describeJSON)
}

// describeJSON renders v as canonical JSON.
func describeJSON(v any) string {
	data, err := canonical.Marshal(v)
	if err != nil {
		if f, ok := v.(float64); ok {
			return canonical.FormatNumber(f)
		}
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// OpsEntry describes one operation for the ops command.
type OpsEntry struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ops.Param `json:"params"`
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List registered operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := ops.All()
			entries := make([]OpsEntry, 0, len(all))
			var text strings.Builder
			for i, op := range all {
				entries = append(entries, OpsEntry{
					Name:        op.Name,
					Description: op.Description,
					Params:      op.Params,
				})

				params := make([]string, len(op.Params))
				for j, p := range op.Params {
					params[j] = fmt.Sprintf("%s %s", p.Name, p.Kind)
				}
				if i > 0 {
					text.WriteString("\n")
				}
				fmt.Fprintf(&text, "%-20s (%s)  %s", op.Name, strings.Join(params, ", "), op.Description)
			}
			return rootOpts.formatter(cmd).Render(entries, text.String())
		},
	}
}
