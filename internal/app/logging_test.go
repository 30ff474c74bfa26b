package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("levels below warn should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn and error should be logged, got: %s", out)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Debug("before")
	logger.SetLevel(LogLevelDebug)
	logger.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("debug should be suppressed at info level: %s", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("debug should be logged after SetLevel: %s", out)
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("opened %s at %d", "/tmp/a.txt", 42)

	if !strings.Contains(buf.String(), "opened /tmp/a.txt at 42") {
		t.Errorf("args not formatted: %s", buf.String())
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("session").Info("ready")

	out := buf.String()
	if !strings.Contains(out, "component=session") {
		t.Errorf("component field missing: %s", out)
	}
}

func TestLoggerFieldsDoNotLeakBack(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	_ = base.WithField("doc", 3)

	base.Info("plain")

	if strings.Contains(buf.String(), "doc=3") {
		t.Errorf("derived fields leaked into base logger: %s", buf.String())
	}
}

func TestLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "plume"})

	logger.Info("started")

	if !strings.Contains(buf.String(), "plume: started") {
		t.Errorf("prefix missing: %s", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic despite having no output writer.
	NullLogger.Debug("a")
	NullLogger.Info("b")
	NullLogger.Warn("c")
	NullLogger.Error("d")
}
