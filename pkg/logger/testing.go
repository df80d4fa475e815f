package logger

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

// TestLogger writes through t.Logf so log lines show up next to the failing test.
type TestLogger struct {
	T      *testing.T
	fields map[string]interface{}
}

func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{T: t}
}

// NewMockLogger returns a TestLogger; without t it discards output.
func NewMockLogger(t ...*testing.T) Logger {
	if len(t) > 0 {
		return NewTestLogger(t[0])
	}
	return NewTestLogger(nil)
}

func (l *TestLogger) log(level, msg string) {
	if l.T == nil {
		return
	}
	l.T.Helper()
	l.T.Logf("[%s] %s%s", level, msg, l.suffix())
}

func (l *TestLogger) suffix() string {
	if len(l.fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, l.fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{T: l.T, fields: merged}
}
