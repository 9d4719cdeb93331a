// Package logger provides the charmbracelet/log wrapper used across the
// build and query paths.
package logger

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Default is the package-level logger used when a caller doesn't need a
// named sub-logger.
var Default = New("geophrase")

// New creates a named logger writing to stderr with timestamps disabled.
func New(name string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          name,
		ReportTimestamp: false,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	})
}
