package apigw

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	// LogLevelSilent suppresses all log output
	LogLevelSilent LogLevel = iota
	// LogLevelError shows only error messages
	LogLevelError
	// LogLevelWarn shows error and warning messages
	LogLevelWarn
	// LogLevelInfo shows error, warning, info and success messages
	LogLevelInfo
	// LogLevelDebug shows all messages including normalization changes
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelSilent:
		return "silent"
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel, defaulting to info
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent", "quiet":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug", "verbose":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorReset  = "\033[0m"
)

// Logger writes user-facing messages for the command line front-end.
type Logger struct {
	level     LogLevel
	output    io.Writer
	errorOut  io.Writer
	colorized bool
	timestamp bool
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{
		level:     level,
		output:    os.Stdout,
		errorOut:  os.Stderr,
		colorized: true,
	}
}

// SetLevel sets the most verbose level that is still written
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// SetOutput sets the writer for info, success and debug messages
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// SetErrorOutput sets the writer for error and warning messages
func (l *Logger) SetErrorOutput(w io.Writer) {
	l.errorOut = w
}

// SetColorized toggles ANSI colors around the message labels
func (l *Logger) SetColorized(colorized bool) {
	l.colorized = colorized
}

// SetTimestamp prefixes every message with the local time when enabled
func (l *Logger) SetTimestamp(timestamp bool) {
	l.timestamp = timestamp
}

func (l *Logger) formatMessage(label, color, message string) string {
	var parts []string
	if l.timestamp {
		parts = append(parts, time.Now().Format("2006-01-02 15:04:05"))
	}
	if l.colorized && color != "" {
		parts = append(parts, fmt.Sprintf("%s[%s]%s", color, label, colorReset))
	} else {
		parts = append(parts, fmt.Sprintf("[%s]", label))
	}
	parts = append(parts, message)
	return strings.Join(parts, " ")
}

func (l *Logger) log(threshold LogLevel, w io.Writer, label, color, format string, args ...interface{}) {
	if l.level < threshold {
		return
	}
	fmt.Fprintln(w, l.formatMessage(label, color, fmt.Sprintf(format, args...)))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, l.errorOut, "ERROR", colorRed, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, l.errorOut, "WARN", colorYellow, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, l.output, "INFO", colorCyan, format, args...)
}

// Success reports a completed run
func (l *Logger) Success(format string, args ...interface{}) {
	l.log(LogLevelInfo, l.output, "OK", colorGreen, format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, l.output, "DEBUG", colorWhite, format, args...)
}
