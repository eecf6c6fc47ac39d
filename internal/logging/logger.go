package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/tweakboard/internal/config"
)

// Logger appends timestamped lines to .tweakboard/logs/tweakboard.log so
// users can inspect configuration warnings and environment faults after
// the tool window closes.
type Logger struct {
	out io.WriteCloser
}

// New creates (or reuses) the log file for the current project directory.
func New(projectDir string) (*Logger, error) {
	logDir := filepath.Join(projectDir, config.TweakboardDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "tweakboard.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{out: f}, nil
}

// NewWithWriter builds a logger over an arbitrary sink. Tests use this to
// capture warning lines.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{out: nopCloser{w}}
}

// Close releases the underlying sink.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	return l.out.Close()
}

// Printf writes a single timestamped line to the log.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.out, "[%s] %s\n", timestamp, line)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
