// Package logging provides structured logging for the Schematron validator,
// wrapping log/slog with level/format configuration and a handful of
// domain-specific convenience methods (compile start/complete, per-node
// evaluation, batch progress).
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging capabilities for the Schematron validator.
type Logger struct {
	*slog.Logger
	level slog.Level
}

// LogLevel represents different logging levels.
type LogLevel int

const (
	// LevelDebug provides detailed debugging information.
	LevelDebug LogLevel = iota
	// LevelInfo provides general informational messages.
	LevelInfo
	// LevelWarn provides warning messages for potentially problematic situations.
	LevelWarn
	// LevelError provides error messages for serious problems.
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts LogLevel to slog.Level.
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel converts a string ("debug", "info", "warn", "error") to a
// LogLevel, defaulting to LevelInfo for unrecognized input.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LoggerConfig holds configuration for logger creation.
type LoggerConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Format specifies the output format ("json" or "text").
	Format string
	// Output specifies the output destination.
	Output io.Writer
	// IncludeSource adds source code information to log entries.
	IncludeSource bool
	// Component identifies the logging component.
	Component string
}

// NewLogger creates a new structured logger with the specified configuration.
func NewLogger(config LoggerConfig) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Format == "" {
		config.Format = "text"
	}

	if config.Component == "" {
		config.Component = "schematron"
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.IncludeSource,
	}

	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	logger := slog.New(handler).With("component", config.Component)

	return &Logger{
		Logger: logger,
		level:  config.Level.ToSlogLevel(),
	}
}

// NewDefaultLogger creates a logger with sensible defaults.
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerConfig{
		Level:         LevelInfo,
		Format:        "text",
		Output:        os.Stdout,
		IncludeSource: false,
		Component:     "schematron",
	})
}

// NewJSONLogger creates a logger that outputs JSON format.
func NewJSONLogger(level LogLevel) *Logger {
	return NewLogger(LoggerConfig{
		Level:         level,
		Format:        "json",
		Output:        os.Stdout,
		IncludeSource: false,
		Component:     "schematron",
	})
}

// NewDebugLogger creates a logger with debug level and source information.
func NewDebugLogger() *Logger {
	return NewLogger(LoggerConfig{
		Level:         LevelDebug,
		Format:        "text",
		Output:        os.Stdout,
		IncludeSource: true,
		Component:     "schematron",
	})
}

// WithSchema returns a logger with schema-file context.
func (l *Logger) WithSchema(schemaPath string) *Logger {
	return &Logger{l.With("schema", schemaPath), l.level}
}

// WithDocument returns a logger with target-document context.
func (l *Logger) WithDocument(documentPath string) *Logger {
	return &Logger{l.With("document", documentPath), l.level}
}

// WithPattern returns a logger with pattern-id context.
func (l *Logger) WithPattern(patternID string) *Logger {
	return &Logger{l.With("pattern_id", patternID), l.level}
}

// WithRule returns a logger with rule-id and context-query context.
func (l *Logger) WithRule(ruleID, contextQuery string) *Logger {
	return &Logger{l.With("rule_id", ruleID, "context", contextQuery), l.level}
}

// WithError returns a logger with error context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.With("error", err.Error()), l.level}
}

// WithDuration returns a logger with duration context.
func (l *Logger) WithDuration(operation string, duration time.Duration) *Logger {
	return &Logger{l.With("operation", operation, "duration_ms", duration.Milliseconds()), l.level}
}

// CompileStart logs the start of the compile phase (spec.md §4.4 Phase A).
func (l *Logger) CompileStart(schemaPath string) {
	l.Debug("compiling schema", "schema", schemaPath)
}

// CompileComplete logs the completion of the compile phase.
func (l *Logger) CompileComplete(schemaPath string, patternCount, ruleCount int, duration time.Duration) {
	l.Info("schema compiled",
		"schema", schemaPath,
		"patterns", patternCount,
		"rules", ruleCount,
		"duration_ms", duration.Milliseconds(),
	)
}

// EvaluateStart logs the start of the evaluate phase (spec.md §4.4 Phase B).
func (l *Logger) EvaluateStart(documentPath string) {
	l.Debug("evaluating document", "document", documentPath)
}

// EvaluateComplete logs the completion of the evaluate phase.
func (l *Logger) EvaluateComplete(documentPath string, duration time.Duration, firedRules, failedChecks int, isValid bool) {
	l.Info("document evaluated",
		"document", documentPath,
		"duration_ms", duration.Milliseconds(),
		"fired_rules", firedRules,
		"failed_checks", failedChecks,
		"is_valid", isValid,
	)
}

// RuleFired logs a fired rule, at debug level since it is on the hot path.
func (l *Logger) RuleFired(ruleID, nodePath string) {
	l.Debug("rule fired", "rule_id", ruleID, "node", nodePath)
}

// RuleSuppressed logs a suppressed rule.
func (l *Logger) RuleSuppressed(ruleID, shadowedByRuleID, nodePath string) {
	l.Debug("rule suppressed", "rule_id", ruleID, "shadowed_by", shadowedByRuleID, "node", nodePath)
}

// CheckFailed logs a failed assert or a successful report.
func (l *Logger) CheckFailed(checkID, nodePath, text string) {
	l.Warn("check failed", "check_id", checkID, "node", nodePath, "text", text)
}

// BatchValidationStart logs the start of batch validation (§C.1).
func (l *Logger) BatchValidationStart(documentCount, workers int) {
	l.Info("starting batch validation", "document_count", documentCount, "workers", workers)
}

// BatchValidationComplete logs batch validation completion.
func (l *Logger) BatchValidationComplete(documentCount, validCount int, duration time.Duration) {
	l.Info("batch validation completed",
		"document_count", documentCount,
		"valid_count", validCount,
		"invalid_count", documentCount-validCount,
		"duration_ms", duration.Milliseconds(),
	)
}

// CacheHit logs a document-result cache hit (§C.2).
func (l *Logger) CacheHit(documentPath string) {
	l.Debug("validation cache hit", "document", documentPath)
}

// IsLevelEnabled checks if a log level is enabled.
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	return l.level <= level.ToSlogLevel()
}

// Global logger instance for convenience.
var defaultLogger = NewDefaultLogger()

// SetDefaultLogger sets the global default logger.
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the global default logger.
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs an info message using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs an error message using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
