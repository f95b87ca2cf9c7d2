package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestTracingHook_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(TracingHook{})

	ctx := ContextWithTraceID(context.Background(), "run-adamawa-2025")
	logger.Info().Ctx(ctx).Msg("document loaded")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "run-adamawa-2025", entry["trace_id"])
	assert.Equal(t, "document loaded", entry["message"])
}

func TestTracingHook_NoTraceIDWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(TracingHook{})

	logger.Info().Msg("document loaded")

	entry := decodeLogLine(t, &buf)
	_, hasTraceID := entry["trace_id"]
	assert.False(t, hasTraceID, "trace_id should be absent without a context value")
}

func TestNewLoggerWithWriter_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Level: "info"}, &buf)

	logger.Info().Int("pages", 734).Msg("extraction started")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "extraction started", entry["message"])
	assert.InDelta(t, 734, entry["pages"], 0)
	assert.Contains(t, entry, "time", "timestamps must be included")
}

func TestNewLoggerWithWriter_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Level: "info", Format: "console"}, &buf)

	logger.Info().Msg("summary table located")

	out := buf.String()
	assert.Contains(t, out, "summary table located")
	// Console output is human-oriented, not a JSON object.
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestNewLoggerWithWriter_TextFormatAlias(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Level: "info", Format: "text"}, &buf)

	logger.Info().Msg("header context recognized")

	out := buf.String()
	assert.Contains(t, out, "header context recognized")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"trace", true, true},
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(Config{Level: tt.level}, &buf)

			logger.Debug().Msg("per-line lexical decision")
			logger.Info().Msg("stage finished")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "per-line lexical decision"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "stage finished"))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), "parseLevel(%q)", tt.input)
	}
}

func TestGenerateTraceID_ULIDShaped(t *testing.T) {
	id := GenerateTraceID()
	assert.Len(t, id, 26, "ULIDs are 26 characters")
	assert.Equal(t, strings.ToUpper(id), id, "ULIDs use an uppercase alphabet")
}

func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 64 {
		id := GenerateTraceID()
		assert.False(t, seen[id], "duplicate trace ID %q", id)
		seen[id] = true
	}
}

func TestContextWithTraceID_RoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "batch-003")
	assert.Equal(t, "batch-003", TraceIDFromContext(ctx))
}

func TestTraceIDFromContext_EmptyWhenUnset(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestGetOrGenerateTraceID_PrefersEnv(t *testing.T) {
	t.Setenv(EnvTraceID, "injected-by-operator")

	ctx := ContextWithTraceID(context.Background(), "from-context")
	assert.Equal(t, "injected-by-operator", GetOrGenerateTraceID(ctx))
}

func TestGetOrGenerateTraceID_FallsBackToContext(t *testing.T) {
	t.Setenv(EnvTraceID, "")

	ctx := ContextWithTraceID(context.Background(), "from-context")
	assert.Equal(t, "from-context", GetOrGenerateTraceID(ctx))
}

func TestGetOrGenerateTraceID_GeneratesWhenAbsent(t *testing.T) {
	t.Setenv(EnvTraceID, "")

	id := GetOrGenerateTraceID(context.Background())
	assert.Len(t, id, 26)
}

func TestFromContext_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(Config{Level: "debug"}, &buf)

	ctx := logger.WithContext(context.Background())
	ctx = ContextWithTraceID(ctx, "trace-xyz")

	FromContext(ctx).Info().Ctx(ctx).Msg("validator finished")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "trace-xyz", entry["trace_id"])
}

func TestFromContext_NeverNil(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// Must be usable without panicking even though nothing was configured.
	logger.Debug().Msg("no-op")
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{
		"api_key", "API_KEY", "github_token", "password", "db_passwd",
		"client_secret", "authorization", "bearer_value", "private_key",
	}
	for _, key := range sensitive {
		assert.True(t, isSensitiveKey(key), "expected %q to be sensitive", key)
	}

	benign := []string{"state_name", "target_year", "page", "unit_code", "file"}
	for _, key := range benign {
		assert.False(t, isSensitiveKey(key), "expected %q to be benign", key)
	}
}

func TestSafeStr_RedactsSensitiveValues(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	SafeStr(logger.Info(), "api_key", "sk-live-123").Msg("configured")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "[REDACTED]", entry["api_key"])
}

func TestSafeStr_PassesBenignValues(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	SafeStr(logger.Info(), "state_name", "Adamawa").Msg("metadata scanned")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "Adamawa", entry["state_name"])
}

func TestComponentLogger_TagsEntries(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	logger := ComponentLogger(base, "adminunits")
	logger.Info().Msg("parent registered")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "adminunits", entry["component"])
}
