package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "MALLAS_LOG_LEVEL"

// Options controls where and how much the logger writes.
type Options struct {
	// Level is one of debug, info, warn, error. Empty falls back to
	// MALLAS_LOG_LEVEL; if that is empty too, logging is silent.
	Level string

	// File redirects output to a file instead of stdout. The TUI sets this
	// so log lines do not tear the screen.
	File string
}

// Initialize creates a new logger with the specified level writing to stdout.
// If level is empty, it checks MALLAS_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithOptions(Options{Level: level})
}

// InitializeWithOptions is Initialize with an optional output file.
func InitializeWithOptions(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if opts.File != "" {
		// No colour escapes in files.
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the MALLAS_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogVerdict logs the outcome of validating a single field.
func LogVerdict(field string, value string, valid bool, reason string) {
	Debug("Field validated",
		zap.String("field", field),
		zap.String("value", value),
		zap.Bool("valid", valid),
		zap.String("reason", reason),
	)
}

// LogTransition logs a submission state machine step.
func LogTransition(from string, event string, to string) {
	Info("Submission transition",
		zap.String("from", from),
		zap.String("event", event),
		zap.String("to", to),
	)
}

// LogHTTPRequest logs an outgoing backend request
func LogHTTPRequest(method string, url string, attempt int) {
	Debug("HTTP request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("attempt", attempt),
	)
}

// LogHTTPResponse logs a backend response
func LogHTTPResponse(method string, url string, statusCode int, size int, elapsed time.Duration) {
	Info("HTTP response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Int("size", size),
		zap.Duration("elapsed", elapsed),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
