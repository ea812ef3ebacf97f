package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/amp-labs/searchhistory/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any

	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))

		out = append(out, rec)
	}

	return out
}

func TestLogger(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		MinLevel:  slog.LevelDebug,
		Output:    &buf,
	})

	Get(context.Background()).Info("default subsystem")

	ctx := WithSubsystem(t.Context(), "overridden")
	Get(ctx).Info("overridden subsystem")

	ctx = With(t.Context(), "term", "sunset")
	Get(With(ctx, "rows", 3)).Debug("with values")
	Get(ctx).Info("parent context unchanged")

	Get(WithMuted(t.Context(), true)).Error("never shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "test", lines[0]["subsystem"])
	assert.Equal(t, "overridden", lines[1]["subsystem"])
	assert.Equal(t, "sunset", lines[2]["term"])
	assert.InDelta(t, 3, lines[2]["rows"], 0)
	assert.NotContains(t, lines[3], "rows")
}

func TestLegacy(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem:   "test",
		JSON:        true,
		MinLevel:    slog.LevelDebug,
		LegacyLevel: slog.LevelInfo,
		Output:      &buf,
	})

	log.Println("legacy line")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "legacy line", lines[0]["msg"])
}

func TestConfigureLogging(t *testing.T) { //nolint:paralleltest
	t.Run("reads the environment", func(t *testing.T) { //nolint:paralleltest
		var buf bytes.Buffer

		ctx := envutil.WithEnvOverride(context.Background(), "LOG_JSON", "true")
		ctx = envutil.WithEnvOverride(ctx, "LOG_LEVEL", "warn")

		logger, err := ConfigureLogging(ctx, "searches", WithOutput(&buf))
		require.NoError(t, err)

		logger.Info("filtered")
		logger.Warn("kept")

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "kept", lines[0]["msg"])
		assert.Equal(t, "searches", GetSubsystem(context.Background()))
	})

	t.Run("rejects bad values", func(t *testing.T) { //nolint:paralleltest
		ctx := envutil.WithEnvOverride(context.Background(), "LOG_OUTPUT", "printer")

		_, err := ConfigureLogging(ctx, "searches")
		require.ErrorIs(t, err, ErrInvalidLogOutput)

		ctx = envutil.WithEnvOverride(context.Background(), "LOG_LEVEL", "chatty")

		_, err = ConfigureLogging(ctx, "searches")
		require.ErrorIs(t, err, envutil.ErrInvalidLogLevel)
	})
}
