// Package common provides the logging facility shared by every package in
// this module, mirroring the pluggable logger pattern used throughout the
// PDF processing stack this module is built from.
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Logger is the interface used for logging across the module.
type Logger interface {
	Error(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	IsLogLevel(level LogLevel) bool
}

// DummyLogger discards everything. It is the default logger so that library
// code never writes to stdout unless a caller opts in.
type DummyLogger struct{}

// Error does nothing for DummyLogger.
func (DummyLogger) Error(format string, args ...interface{}) {}

// Warning does nothing for DummyLogger.
func (DummyLogger) Warning(format string, args ...interface{}) {}

// Notice does nothing for DummyLogger.
func (DummyLogger) Notice(format string, args ...interface{}) {}

// Info does nothing for DummyLogger.
func (DummyLogger) Info(format string, args ...interface{}) {}

// Debug does nothing for DummyLogger.
func (DummyLogger) Debug(format string, args ...interface{}) {}

// Trace does nothing for DummyLogger.
func (DummyLogger) Trace(format string, args ...interface{}) {}

// IsLogLevel always returns true for DummyLogger so callers that guard
// expensive log argument construction still run it in tests if they want to.
func (DummyLogger) IsLogLevel(level LogLevel) bool { return true }

// LogLevel is the verbosity level for logging.
type LogLevel int

// Log levels, most verbose first; Error (0) is the most important.
const (
	LogLevelTrace   LogLevel = 5
	LogLevelDebug   LogLevel = 4
	LogLevelInfo    LogLevel = 3
	LogLevelNotice  LogLevel = 2
	LogLevelWarning LogLevel = 1
	LogLevelError   LogLevel = 0
)

// ConsoleLogger writes logs to stdout at or below its configured LogLevel.
type ConsoleLogger struct {
	LogLevel LogLevel
}

// NewConsoleLogger creates a new console logger at the given level.
func NewConsoleLogger(logLevel LogLevel) *ConsoleLogger {
	return &ConsoleLogger{LogLevel: logLevel}
}

// IsLogLevel returns true if the logger's level is at least `level`.
func (l ConsoleLogger) IsLogLevel(level LogLevel) bool {
	return l.LogLevel >= level
}

// Error logs an error message.
func (l ConsoleLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		l.output(os.Stdout, "[ERROR] ", format, args...)
	}
}

// Warning logs a warning message.
func (l ConsoleLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		l.output(os.Stdout, "[WARNING] ", format, args...)
	}
}

// Notice logs a notice message.
func (l ConsoleLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		l.output(os.Stdout, "[NOTICE] ", format, args...)
	}
}

// Info logs an info message.
func (l ConsoleLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		l.output(os.Stdout, "[INFO] ", format, args...)
	}
}

// Debug logs a debug message.
func (l ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug {
		l.output(os.Stdout, "[DEBUG] ", format, args...)
	}
}

// Trace logs a trace message.
func (l ConsoleLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace {
		l.output(os.Stdout, "[TRACE] ", format, args...)
	}
}

func (l ConsoleLogger) output(f io.Writer, prefix, format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	src := fmt.Sprintf("%s%s:%d ", prefix, file, line) + format + "\n"
	fmt.Fprintf(f, src, args...)
}

// Log is the package-wide logger used by every component. It defaults to a
// DummyLogger; callers opt into console output with SetLogger.
var Log Logger = DummyLogger{}

// SetLogger installs `logger` as the module-wide logger.
func SetLogger(logger Logger) {
	Log = logger
}
