package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	config := LoggerConfig{
		Level:         LevelInfo,
		Format:        "json",
		Output:        &buf,
		IncludeSource: false,
		Component:     "test-component",
	}

	logger := NewLogger(config)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "test-component") {
		t.Errorf("expected log output to contain component name, got: %s", output)
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, want %s", test.level, got, test.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCompileAndEvaluateLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.CompileStart("schema.sch")
	logger.CompileComplete("schema.sch", 2, 5, 10*time.Millisecond)
	logger.EvaluateStart("doc.xml")
	logger.EvaluateComplete("doc.xml", 5*time.Millisecond, 3, 1, false)
	logger.RuleFired("r1", "/root")
	logger.RuleSuppressed("r2", "r1", "/root")
	logger.CheckFailed("c1", "/root", "must hold")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("expected valid JSON log line, got %q: %v", line, err)
		}
	}
}

func TestWithHelpersAttachFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithSchema("schema.sch").WithDocument("doc.xml").WithPattern("p1").Info("context test")

	output := buf.String()
	for _, want := range []string{`"schema":"schema.sch"`, `"document":"doc.xml"`, `"pattern_id":"p1"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected log output to contain %s, got: %s", want, output)
		}
	}
}

func TestIsLevelEnabled(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LevelWarn})
	if logger.IsLevelEnabled(LevelDebug) {
		t.Error("expected debug level to be disabled at warn threshold")
	}
	if !logger.IsLevelEnabled(LevelError) {
		t.Error("expected error level to be enabled at warn threshold")
	}
}
