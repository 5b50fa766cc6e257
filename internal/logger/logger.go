// Package logger provides verbose logging for the designdocs CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the polling and
// generation pipeline.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one log line. Lines below the always threshold are
// dropped unless verbose mode is on.
func emit(level string, always bool, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && !always {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit("DEBUG", false, format, args)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit("INFO", false, format, args)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit("WARN", false, format, args)
}

// Error prints an error message. Unlike the other levels, errors are
// always printed regardless of verbose mode.
func Error(format string, args ...any) {
	emit("ERROR", true, format, args)
}
