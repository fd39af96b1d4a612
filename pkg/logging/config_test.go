package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "parseLevel(%q)", tt.input)
	}
}

func TestNewLoggerFromConfigNil(t *testing.T) {
	// nil config must fall back to defaults rather than panic
	logger := NewLoggerFromConfig(nil)
	logger.Info().Msg("ok")
}

func TestNewLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Str("component", "reconciler").Msg("joined profiles")

	out := buf.String()
	assert.True(t, strings.Contains(out, `"component":"reconciler"`), "expected structured field, got %q", out)
	assert.True(t, strings.Contains(out, `"message":"joined profiles"`), "expected message field, got %q", out)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}
