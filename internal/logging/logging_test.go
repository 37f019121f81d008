package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	res := newLogger(Config{Level: "debug", Format: FormatJSON}, &buf)
	defer res.Close()

	res.Logger.Debug().Str("operation", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"operation":"test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.False(t, res.UsingFile())
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghscout.log")
	res := NewLogger(Config{Level: "info", Format: FormatJSON, Output: OutputFile, File: path})
	require.True(t, res.UsingFile())

	res.Logger.Info().Msg("to file")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLogger_FileFallback(t *testing.T) {
	var buf bytes.Buffer
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "x.log")
	res := newLogger(Config{Format: FormatJSON, Output: OutputFile, File: missing}, &buf)

	assert.False(t, res.UsingFile())
	assert.NotEmpty(t, res.FallbackReason)

	var warn bytes.Buffer
	PrintFallbackWarning(&warn, res.FallbackReason)
	assert.Contains(t, warn.String(), "logging to stderr")
}

func TestTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := l.WithContext(context.Background())

	id := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))

	FromContext(ctx).Info().Msg("traced")
	assert.Contains(t, buf.String(), id)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(zerolog.New(&buf), "cache")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"cache"`)
}
