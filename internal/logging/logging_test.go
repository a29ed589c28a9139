package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstrlit/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"loud", log.WarnLevel},
		{"", log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
	assert.True(t, logging.ValidLevel("Debug"))
	assert.False(t, logging.ValidLevel("trace"))
}

func TestNewWithWriterFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("parsed", logging.FieldPath, "a.fstr", logging.FieldLiterals, 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "path=a.fstr")
	assert.Contains(t, out, "literals=3")
}

func TestContextRoundTrip(t *testing.T) {
	logger := logging.NewWithWriter(&bytes.Buffer{}, "debug")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	prev := logging.Default()
	t.Cleanup(func() { logging.SetDefault(prev) })

	logger := logging.NewWithWriter(&bytes.Buffer{}, "error")
	logging.SetDefault(logger)
	require.Same(t, logger, logging.Default())
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}
