// Package logger wraps charmbracelet/log with the defaults used across
// triedict's binaries and libraries: plain text output to stderr (so stdout
// stays free for the msgpack IPC stream), a per-component prefix, and a
// level read from the process-wide log level unless a caller overrides it.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a charm logger for prefix using the current global log level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a charm logger for prefix with explicit level,
// caller-reporting and timestamp settings, used by pkg/server where request
// handling wants a quieter, caller-free logger than the CLI's.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
