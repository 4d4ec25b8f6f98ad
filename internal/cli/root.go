package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/cidemo/internal/config"
	"github.com/roach88/cidemo/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string

	// Set by the root PersistentPreRunE.
	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cidemo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Config: config.Default(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cmd := &cobra.Command{
		Use:   "cidemo",
		Short: "cidemo - calculator and text utilities",
		Long: `Math and string utilities behind a small calculator app.

Every operation can be run directly, recorded to a SQLite history,
replayed, and exercised by YAML scenarios with golden traces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite history database")

	cmd.AddCommand(NewCalcCommand(opts))
	cmd.AddCommand(NewPercentCommand(opts))
	cmd.AddCommand(NewTextCommand(opts))
	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs cidemo with args and returns the process exit code.
// Errors raised by cobra itself (unknown commands, wrong argument counts,
// bad flags) carry no exit code and are reported as command errors.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = WrapExitError(ExitCommandError, "command error", err)
	}
	if !exitErr.Reported {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitErr.Code
}

// resolve layers flags over the config file over defaults and sets up logging.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("db") {
		cfg.Database = o.Database
	}

	if !isValidFormat(cfg.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}

	o.Config = cfg
	o.Format = cfg.Format
	o.Database = cfg.Database

	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	o.Logger.Debug("settings resolved",
		"config", o.ConfigPath,
		"format", cfg.Format,
		"database", cfg.Database,
	)
	return nil
}

// formatter returns an OutputFormatter writing to the command's stdout.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}

// openStore opens the configured history database.
// Returns a command error if none is configured.
func (o *RootOptions) openStore() (*store.Store, error) {
	if o.Database == "" {
		return nil, NewExitError(ExitCommandError, "no database configured (use --db or set database in the config file)")
	}
	st, err := store.Open(o.Database, store.WithLogger(o.Logger))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
