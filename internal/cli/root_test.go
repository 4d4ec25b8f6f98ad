package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "cidemo", cmd.Use)
	assert.Contains(t, cmd.Long, "calculator")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"calc"}, {"percent"}, {"invoke"}, {"ops"}, {"history"}, {"replay"}, {"test"},
		{"text", "capitalize"}, {"text", "truncate"}, {"text", "slugify"}, {"text", "reverse"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "--format", "xml", "ops")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("format from file", func(t *testing.T) {
		cfg := writeFile(t, dir, "json.yaml", "format: json\n")
		out, _, err := executeCommand(t, "--config", cfg, "calc", "add", "5", "3")
		require.NoError(t, err)
		assert.Contains(t, out, `"status":"ok"`)
	})

	t.Run("flag overrides file", func(t *testing.T) {
		cfg := writeFile(t, dir, "json2.yaml", "format: json\n")
		out, _, err := executeCommand(t, "--config", cfg, "--format", "text", "calc", "add", "5", "3")
		require.NoError(t, err)
		assert.Equal(t, "Result: 8\n", out)
	})

	t.Run("truncate length from file", func(t *testing.T) {
		cfg := writeFile(t, dir, "trunc.yaml", "truncate_length: 3\n")
		out, _, err := executeCommand(t, "--config", cfg, "text", "truncate", "Hello")
		require.NoError(t, err)
		assert.Equal(t, "Hel...\n", out)
	})

	t.Run("invalid file", func(t *testing.T) {
		cfg := writeFile(t, dir, "bad.yaml", "format: xml\n")
		_, _, err := executeCommand(t, "--config", cfg, "ops")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := executeCommand(t, "--config", filepath.Join(dir, "nope.yaml"), "ops")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := executeCommand(t, "-v", "text", "reverse", "abc")
	require.NoError(t, err)
	assert.Equal(t, "cba\n", out)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "operation invoked")
}

func TestQuietByDefault(t *testing.T) {
	_, errOut, err := executeCommand(t, "text", "reverse", "abc")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantOut    string
		wantStderr string
	}{
		{"success", []string{"calc", "add", "1", "2"}, ExitSuccess, "Result: 3\n", ""},
		{"operation failure is reported once", []string{"calc", "/", "1", "0"}, ExitFailure, "Error [DIVISION_BY_ZERO]: Cannot divide by zero\n", ""},
		{"unknown command", []string{"frobnicate"}, ExitCommandError, "", `Error: unknown command "frobnicate"`},
		{"wrong arg count", []string{"percent", "1"}, ExitCommandError, "", "Error: accepts 2 arg(s)"},
		{"unknown flag", []string{"ops", "--nope"}, ExitCommandError, "", "Error: unknown flag: --nope"},
		{"no database", []string{"history"}, ExitCommandError, "", "Error: no database configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}

			code := Execute(tt.args, out, errOut)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, out.String())
			if tt.wantStderr == "" {
				assert.Empty(t, errOut.String())
			} else {
				assert.Contains(t, errOut.String(), tt.wantStderr)
			}
		})
	}
}
