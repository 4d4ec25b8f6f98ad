package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cidemo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, DefaultTruncateLength, cfg.TruncateLength)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
format: json
database: /tmp/history.db
truncate_length: 8
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Format:         "json",
		Database:       "/tmp/history.db",
		TruncateLength: 8,
		LogLevel:       "debug",
	}, cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "truncate_length: 3\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.TruncateLength)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/cidemo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "format: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown format", "format: xml\n", "format"},
		{"negative truncate length", "truncate_length: -1\n", "truncate_length"},
		{"truncate length not a number", "truncate_length: ten\n", "truncate_length"},
		{"unknown log level", "log_level: loud\n", "log_level"},
		{"database not a string", "database: 42\n", "database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "colour: blue\n"))
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Format = "yaml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TruncateLength = -5
	assert.Error(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, Config{LogLevel: tt.level}.SlogLevel())
		})
	}
}
