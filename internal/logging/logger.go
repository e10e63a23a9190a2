// Package logging writes failbell's structured log. Logs go to a file
// because the wrapped command owns the terminal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the log file written inside the data directory.
const FileName = "failbell.log"

// Logger writes JSON lines through slog. Loggers derived with WithSession
// share the parent's file.
type Logger struct {
	*slog.Logger
	sink *sink
}

type sink struct {
	once sync.Once
	file *os.File
	err  error
}

func (s *sink) close() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if err := s.file.Sync(); err != nil {
			s.err = fmt.Errorf("failed to sync log file: %w", err)
		}
		if err := s.file.Close(); err != nil && s.err == nil {
			s.err = fmt.Errorf("failed to close log file: %w", err)
		}
	})
	return s.err
}

// ParseLevel accepts debug, info, warn or error in any case, including
// offsets such as "warn+2".
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Open appends to {dir}/failbell.log, creating dir as needed.
func Open(dir string, level slog.Level) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(f, level)
	l.sink = &sink{file: f}
	return l, nil
}

// New returns a Logger writing to w. Close leaves w open.
func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// WithSession tags every entry with the session id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{Logger: l.Logger.With("session_id", id), sink: l.sink}
}

// Close flushes and closes the log file. Later calls return the first
// result.
func (l *Logger) Close() error {
	return l.sink.close()
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return New(io.Discard, slog.LevelError+1)
}
