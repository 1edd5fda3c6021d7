package loggy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: slog.LevelInfo, Format: "json", AddSource: true})

	logger.Debug("hidden")
	logger.Info("Parsed meet file", "records", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug records should be filtered")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "Parsed meet file", record["msg"])
	assert.Equal(t, float64(3), record["records"])
	assert.Contains(t, record["source"], "loggy_test.go")
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: slog.LevelDebug, Format: "text"})

	logger.WithError(errors.New("boom")).Warn("Import failed")
	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "Import failed")

	assert.Same(t, logger, logger.WithError(nil))
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("nothing")
		logger.With("a", 1).Error("still nothing")
	})
	assert.False(t, logger.Enabled(slog.LevelError))
}

func TestWithParseID(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(New(&buf, Config{Level: slog.LevelInfo, Format: "text"}))
	defer NewNoopLogger()

	ctx := WithParseID(context.Background())
	id := GetParseID(ctx)
	require.True(t, strings.HasPrefix(id, "parse-"))

	FromContext(ctx).Info("tagged")
	assert.Contains(t, buf.String(), "parse_id="+id)

	assert.Empty(t, GetParseID(context.Background()))
}
