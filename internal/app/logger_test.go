package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hangyeol/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info+2", slog.LevelInfo + 2},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})

	logger.InfoContext(context.Background(), "lexicon loaded")
	assert.Zero(t, buf.Len())

	logger.WarnContext(context.Background(), "tokenizer slow")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "yaml"}).Info("graded", slog.String("grade", "3급"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "unknown formats fall back to JSON")
	assert.Equal(t, "graded", rec["msg"])
	assert.Equal(t, "3급", rec["grade"])
	assert.Equal(t, appName, rec["app"])
	assert.NotContains(t, rec, "source")
}

func TestNewLogger_TextHasSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "TEXT"}).Info("graded")

	assert.Contains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "app="+appName)
}
