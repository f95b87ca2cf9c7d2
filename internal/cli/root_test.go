package cli_test

import (
	"bytes"
	"testing"

	"github.com/stateledger/budgetextract/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		checkOutput func(t *testing.T, output string)
	}{
		{
			name:        "help flag",
			args:        []string{"--help"},
			expectError: false,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "extract structured administrative, economic, programme, and summary tables from state government budget PDFs")
				assert.Contains(t, output, "Available Commands:")
				assert.Contains(t, output, "extract")
				assert.Contains(t, output, "batch")
				assert.Contains(t, output, "review")
				assert.Contains(t, output, "config")
			},
		},
		{
			name:        "version flag",
			args:        []string{"--version"},
			expectError: false,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "test-version")
			},
		},
		{
			name:        "invalid command",
			args:        []string{"invalid"},
			expectError: true,
		},
		{
			name:        "extract subcommand help",
			args:        []string{"extract", "--help"},
			expectError: false,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "--input")
				assert.Contains(t, output, "--output")
			},
		},
		{
			name:        "batch subcommand help",
			args:        []string{"batch", "--help"},
			expectError: false,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "--input-dir")
				assert.Contains(t, output, "--output-dir")
				assert.Contains(t, output, "--workers")
			},
		},
		{
			name:        "config subcommand help",
			args:        []string{"config", "--help"},
			expectError: false,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "init")
				assert.Contains(t, output, "set")
				assert.Contains(t, output, "get")
				assert.Contains(t, output, "list")
				assert.Contains(t, output, "validate")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := cli.NewRootCmd("test-version")
			cmd.SetOut(&buf)
			cmd.SetErr(&buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				if tt.checkOutput != nil {
					tt.checkOutput(t, buf.String())
				}
			}
		})
	}
}

func TestRootCmdExamples(t *testing.T) {
	cmd := cli.NewRootCmd("test-version")

	assert.NotEmpty(t, cmd.Example)
	assert.Contains(t, cmd.Example, "budgetextract extract")
	assert.Contains(t, cmd.Example, "budgetextract batch")
	assert.Contains(t, cmd.Example, "budgetextract review")
	assert.Contains(t, cmd.Example, "budgetextract config init")
}

func TestRootCmdStructure(t *testing.T) {
	cmd := cli.NewRootCmd("test-version")

	extractCmd, _, err := cmd.Find([]string{"extract"})
	require.NoError(t, err)
	assert.NotNil(t, extractCmd)

	batchCmd, _, err := cmd.Find([]string{"batch"})
	require.NoError(t, err)
	assert.NotNil(t, batchCmd)

	reviewCmd, _, err := cmd.Find([]string{"review"})
	require.NoError(t, err)
	assert.NotNil(t, reviewCmd)

	configCmd, _, err := cmd.Find([]string{"config"})
	require.NoError(t, err)
	assert.NotNil(t, configCmd)

	validateCmd, _, err := cmd.Find([]string{"config", "validate"})
	require.NoError(t, err)
	assert.NotNil(t, validateCmd)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := cli.NewRootCmd("test-version")

	debugFlag := cmd.PersistentFlags().Lookup("debug")
	assert.NotNil(t, debugFlag)
	assert.Equal(t, "bool", debugFlag.Value.Type())
	assert.Equal(t, "false", debugFlag.DefValue)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--version"})
	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "test-version")
}

// TestExitCodeBehavior verifies that the CLI returns proper exit codes:
// nil (exit 0) for successful commands, an error (exit 1) for failed ones.
// This tests the Execute() error return, not os.Exit() directly; main()
// converts a non-nil error to os.Exit(1).
func TestExitCodeBehavior(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{name: "success - help command", args: []string{"--help"}, expectError: false},
		{name: "success - version command", args: []string{"--version"}, expectError: false},
		{name: "failure - unknown command", args: []string{"unknown-command"}, expectError: true},
		{name: "failure - unknown flag", args: []string{"--unknown-flag"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := cli.NewRootCmd("test-version")
			cmd.SetOut(&buf)
			cmd.SetErr(&buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			if tt.expectError {
				require.Error(t, err, "Command should return error for exit code 1")
			} else {
				require.NoError(t, err, "Command should return nil for exit code 0")
			}
		})
	}
}
