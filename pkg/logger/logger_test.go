package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func bufferedLogger() (*zerologLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return newZerologLogger(buf), buf
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name    string
		logFunc func(Logger)
		level   string
	}{
		{"debug", func(l Logger) { l.Debug("debug message") }, "debug"},
		{"info", func(l Logger) { l.Info("info message") }, "info"},
		{"warn", func(l Logger) { l.Warn("warn message") }, "warn"},
		{"error", func(l Logger) { l.Error("error message") }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := bufferedLogger()
			tt.logFunc(l)
			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
			assert.Contains(t, buf.String(), tt.level+" message")
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l, buf := bufferedLogger()
	l.Info("filtered")
	l.Error("kept")

	assert.NotContains(t, buf.String(), "filtered")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLoggerWithLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logger := NewLoggerWithLevel(tt.level)
			assert.NotNil(t, logger)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestWithFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l, buf := bufferedLogger()
	scoped := l.WithFields(map[string]interface{}{
		"organization_id": "org-1",
		"messages":        12,
		"nil_field":       nil,
	}).WithField("account_id", "acc-1")
	scoped.Info("sync finished")

	out := buf.String()
	assert.Contains(t, out, `"organization_id":"org-1"`)
	assert.Contains(t, out, `"messages":12`)
	assert.Contains(t, out, `"nil_field":null`)
	assert.Contains(t, out, `"account_id":"acc-1"`)
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l, buf := bufferedLogger()
	_ = l.WithFields(map[string]interface{}{"child": true})
	l.Info("parent")

	assert.NotContains(t, buf.String(), "child")
}
