package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWriter_OpensFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "extract.log")

	writer := createWriter(LoggingConfig{Output: "file", File: logFile})
	require.NotNil(t, writer)

	file, ok := writer.(*os.File)
	require.True(t, ok, "file output should yield an *os.File")
	assert.Equal(t, logFile, file.Name())

	_, err := file.WriteString("pipeline start\n")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, "pipeline start\n", string(content))
}

func TestCreateWriter_StderrWhenFileUnopenable(t *testing.T) {
	// A file inside a read-only directory cannot be created.
	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(readOnlyDir, 0o500))

	writer := createWriter(LoggingConfig{
		Output: "file",
		File:   filepath.Join(readOnlyDir, "extract.log"),
	})

	assert.Equal(t, os.Stderr, writer)
}

func TestCreateWriter_StderrWhenFileEmpty(t *testing.T) {
	writer := createWriter(LoggingConfig{Output: "file"})
	assert.Equal(t, os.Stderr, writer)
}

func TestCreateWriter_Stdout(t *testing.T) {
	writer := createWriter(LoggingConfig{Output: "stdout"})
	assert.Equal(t, os.Stdout, writer)
}

func TestCreateWriter_DefaultsToStderr(t *testing.T) {
	for _, output := range []string{"", "stderr", "unexpected"} {
		writer := createWriter(LoggingConfig{Output: output})
		assert.Equal(t, os.Stderr, writer, "output=%q", output)
	}
}

func TestNewLoggerWithPath_UsesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "extract.log")

	result := NewLoggerWithPath(Config{Level: "info", Output: "file", File: logFile})
	defer func() { _ = result.Close() }()

	assert.True(t, result.UsingFile)
	assert.Equal(t, logFile, result.FilePath)
	assert.False(t, result.FallbackUsed)

	result.Logger.Info().Msg("batch worker started")
	require.NoError(t, result.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "batch worker started")
}

func TestNewLoggerWithPath_FallsBackToStderr(t *testing.T) {
	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(readOnlyDir, 0o500))

	result := NewLoggerWithPath(Config{
		Level:  "info",
		Output: "file",
		File:   filepath.Join(readOnlyDir, "extract.log"),
	})
	defer func() { _ = result.Close() }()

	assert.False(t, result.UsingFile)
	assert.Empty(t, result.FilePath)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestNewLoggerWithPath_StdoutOutput(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "info", Output: "stdout"})
	defer func() { _ = result.Close() }()

	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Empty(t, result.FilePath)
}

func TestLogPathResult_CloseWithoutFile(t *testing.T) {
	result := NewLoggerWithPath(Config{Level: "info"})
	assert.NoError(t, result.Close())
}

func TestPrintLogPathMessage(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/var/log/budgetextract/extract.log")
	assert.Equal(t, "Logging to: /var/log/budgetextract/extract.log\n", buf.String())

	buf.Reset()
	PrintLogPathMessage(&buf, "")
	assert.Empty(t, buf.String(), "empty path should print nothing")
}

func TestPrintFallbackWarning(t *testing.T) {
	var buf bytes.Buffer
	PrintFallbackWarning(&buf, "permission denied")
	assert.Equal(t,
		"Warning: Could not write to log file, falling back to stderr (permission denied)\n",
		buf.String())

	buf.Reset()
	PrintFallbackWarning(&buf, "")
	assert.Equal(t,
		"Warning: Could not write to log file, falling back to stderr\n",
		buf.String())
}
