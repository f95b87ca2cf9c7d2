package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stateledger/budgetextract/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		input          config.LoggingConfig
		expectedLevel  string
		expectedFormat string
		expectedOutput string
		expectedFile   string
	}{
		{
			name: "defaults to stderr when no file specified",
			input: config.LoggingConfig{
				Level:  "info",
				Format: "json",
				File:   "",
			},
			expectedLevel:  "info",
			expectedFormat: "json",
			expectedOutput: "stderr",
			expectedFile:   "",
		},
		{
			name: "sets output to file when file path provided",
			input: config.LoggingConfig{
				Level:  "debug",
				Format: "console",
				File:   "/var/log/budgetextract.log",
			},
			expectedLevel:  "debug",
			expectedFormat: "console",
			expectedOutput: "file",
			expectedFile:   "/var/log/budgetextract.log",
		},
		{
			name: "handles all log levels",
			input: config.LoggingConfig{
				Level:  "error",
				Format: "text",
				File:   "",
			},
			expectedLevel:  "error",
			expectedFormat: "text",
			expectedOutput: "stderr",
			expectedFile:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := tc.input.ToLoggingConfig()

			assert.Equal(t, tc.expectedLevel, result.Level, "Level mismatch")
			assert.Equal(t, tc.expectedFormat, result.Format, "Format mismatch")
			assert.Equal(t, tc.expectedOutput, result.Output, "Output mismatch")
			assert.Equal(t, tc.expectedFile, result.File, "File mismatch")
		})
	}
}

// Test that environment variables override config file values (file < env).
func TestLoggingConfig_OverridePrecedence(t *testing.T) {
	origLevel := os.Getenv("BUDGETEXTRACT_LOG_LEVEL")
	origFormat := os.Getenv("BUDGETEXTRACT_LOG_FORMAT")
	t.Cleanup(func() {
		if origLevel != "" {
			os.Setenv("BUDGETEXTRACT_LOG_LEVEL", origLevel)
		} else {
			os.Unsetenv("BUDGETEXTRACT_LOG_LEVEL")
		}
		if origFormat != "" {
			os.Setenv("BUDGETEXTRACT_LOG_FORMAT", origFormat)
		} else {
			os.Unsetenv("BUDGETEXTRACT_LOG_FORMAT")
		}
	})

	t.Run("env vars override config file values", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		configPath := filepath.Join(tempDir, ".budgetextract", "config.yaml")
		err := os.MkdirAll(filepath.Dir(configPath), 0700)
		require.NoError(t, err)

		configContent := `
logging:
  level: info
  format: json
`
		err = os.WriteFile(configPath, []byte(configContent), 0600)
		require.NoError(t, err)

		os.Setenv("BUDGETEXTRACT_LOG_LEVEL", "debug")
		os.Setenv("BUDGETEXTRACT_LOG_FORMAT", "text")

		cfg := config.New()

		assert.Equal(t, "debug", cfg.Logging.Level, "Env var should override config file level")
		assert.Equal(t, "text", cfg.Logging.Format, "Env var should override config file format")
	})
}

func TestAuditConfig_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		auditConfig config.AuditConfig
		expectError bool
	}{
		{
			name: "disabled audit requires no validation",
			auditConfig: config.AuditConfig{
				Enabled: false,
				File:    "",
			},
			expectError: false,
		},
		{
			name: "enabled audit with empty file is valid",
			auditConfig: config.AuditConfig{
				Enabled: true,
				File:    "",
			},
			expectError: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{
				Output: config.OutputConfig{
					DefaultFormat: "table",
					Precision:     2,
				},
				Extraction: config.ExtractionConfig{
					PdftotextPath:  "pdftotext",
					PdfinfoPath:    "pdfinfo",
					TargetYearMode: "auto",
				},
				Logging: config.LoggingConfig{
					Level:  "info",
					Format: "json",
					Audit:  tc.auditConfig,
				},
			}

			err := cfg.Validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLoggingConfig(t *testing.T) {
	loggingCfg := config.GetLoggingConfig()

	assert.NotEmpty(t, loggingCfg.Level, "Level should have a default value")
}
