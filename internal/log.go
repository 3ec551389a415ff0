package internal

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ParseLogLevel maps ERROR/WARN/INFO/DEBUG/TRACE to a LogLevel.
func ParseLogLevel(s string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError, true
	case "WARN":
		return LogLevelWarn, true
	case "INFO":
		return LogLevelInfo, true
	case "DEBUG":
		return LogLevelDebug, true
	case "TRACE":
		return LogLevelTrace, true
	}
	return LogLevelInfo, false
}

// Logger provides leveled printf-style logging on top of zap
type Logger struct {
	level LogLevel
	sugar *zap.SugaredLogger
}

// NewLogger creates a console logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithFormat(level, "console")
}

// NewLoggerWithFormat creates a logger writing "console" or "json" encoded lines
func NewLoggerWithFormat(level LogLevel, format string) *Logger {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	// Level gating happens in Logger so zap sees everything.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{level: level, sugar: base.Sugar()}
}

// NewNopLogger discards everything; used by tests
func NewNopLogger() *Logger {
	return &Logger{level: LogLevelError, sugar: zap.NewNop().Sugar()}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL and LOG_FORMAT environment variables
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	if parsed, ok := ParseLogLevel(os.Getenv("LOG_LEVEL")); ok {
		level = parsed
	}
	return NewLoggerWithFormat(level, os.Getenv("LOG_FORMAT"))
}

// Named returns a child logger tagged with a component name
func (l *Logger) Named(component string) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.Named(component)}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.sugar.Errorf(format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.sugar.Warnf(format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.sugar.Infof(format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.sugar.Debugf(format, args...)
	}
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LogLevelTrace {
		l.sugar.Debugf("[TRACE] "+format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
