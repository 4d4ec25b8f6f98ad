// Package config loads cidemo settings from a YAML file.
//
// Files are checked against an embedded CUE schema before being decoded, so a
// typo in a key or an out-of-range value is reported with its field path
// instead of being silently ignored. Precedence is flags > file > defaults;
// the file layer is applied here and the flag layer by the CLI.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// DefaultTruncateLength is used by `text truncate` when --max is not given.
const DefaultTruncateLength = 20

// Config holds the settings shared by all commands.
type Config struct {
	Format         string `yaml:"format" json:"format"`
	Database       string `yaml:"database" json:"database,omitempty"`
	TruncateLength int    `yaml:"truncate_length" json:"truncate_length"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:         "text",
		TruncateLength: DefaultTruncateLength,
		LogLevel:       "warn",
	}
}

// Load reads path and layers it over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the schema and decodes it into cfg.
// Fields absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return nil // empty file
	}

	if err := validate(raw); err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Validate checks a fully assembled Config, e.g. after flag overrides.
func (c Config) Validate() error {
	return validate(c)
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to Warn.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// validate unifies v with the #Config definition.
func validate(v any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	val := ctx.Encode(v)
	if err := val.Err(); err != nil {
		return formatCUEError(err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// ValidationError is a config value rejected by the schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Message
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

// formatCUEError reduces a CUE error list to its first entry.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := errs[0]
	path := strings.TrimPrefix(strings.Join(first.Path(), "."), "#Config.")
	format, args := first.Msg()
	return &ValidationError{
		Field:   path,
		Message: fmt.Sprintf(format, args...),
	}
}
