// Package logging builds the structured loggers used by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shower/internal/config"
)

// New returns a logger writing to w at the given level name
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
func New(w io.Writer, level, prefix string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// FromEnv returns a logger configured by SHOOTER_LOG_LEVEL and
// SHOOTER_LOG_FILE. Terminal frontends must not log to stdout, so the
// fallback output is stderr. The returned close function releases the log
// file, if one was opened.
func FromEnv(prefix string) (*log.Logger, func() error, error) {
	level := config.GetEnv("SHOOTER_LOG_LEVEL", "info")
	path := config.GetEnv("SHOOTER_LOG_FILE", "")
	if path == "" {
		return New(os.Stderr, level, prefix), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level, prefix), f.Close, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
