// Package logging builds the file-backed logger. The TUI owns the terminal,
// so nothing is written to stderr while the program runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
)

type Options struct {
	Level string
	Path  string
}

// DefaultPath is <user cache dir>/pomo/pomo.log.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "pomo", "pomo.log"), nil
}

// New opens (appending) the log file and returns a logger plus its closer.
func New(opts Options) (*charmLog.Logger, func() error, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *charmLog.Logger {
	return newLogger(io.Discard, charmLog.ErrorLevel)
}

func newLogger(w io.Writer, level charmLog.Level) *charmLog.Logger {
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          "pomo",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
}

func parseLevel(raw string) (charmLog.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return charmLog.InfoLevel, nil
	}
	level, err := charmLog.ParseLevel(raw)
	if err != nil {
		return 0, fmt.Errorf("parse logging level %q: %w", raw, err)
	}
	return level, nil
}
