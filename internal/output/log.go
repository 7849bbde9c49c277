// Package output provides terminal output utilities for the star CLI:
// the shared logger, lipgloss styles, status lines, tables, spinners and
// interactive prompts.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// SetupLogging configures the logger based on verbosity.
func SetupLogging(verbose bool) {
	SetupLoggingTo(os.Stderr, verbose)
}

// SetupLoggingTo configures the logger to write to w.
func SetupLoggingTo(w io.Writer, verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "star",
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}
