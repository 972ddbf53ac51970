// Package logger provides the diagnostic logger. The user-facing plan
// and summary go to stdout through the report package; this logger owns
// stderr and the optional rotated log file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface used throughout the tool.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	Shutdown() error
}

// Config controls log output.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string

	// Format is text or json. Defaults to text.
	Format string

	// File enables an additional rotated log file when Path is set.
	File FileConfig

	// Writer overrides the default stderr output. Used by tests.
	Writer io.Writer
}

// FileConfig configures the rotated log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// New creates a Logger writing to stderr, plus the configured file.
func New(cfg Config) (Logger, error) {
	base := cfg.Writer
	if base == nil {
		base = os.Stderr
	}
	writers := []io.Writer{base}
	var closers []io.Closer

	if cfg.File.Path != "" {
		fw, err := newFileWriter(cfg.File)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fw)
		closers = append(closers, fw)
	}

	out := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return &slogLogger{logger: slog.New(handler), closers: closers}, nil
}

// newFileWriter creates a rotating file writer via lumberjack.
func newFileWriter(cfg FileConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type slogLogger struct {
	logger  *slog.Logger
	closers []io.Closer
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With creates a child logger. Children do not own the writers, so
// shutting one down never closes the parent's file.
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Shutdown() error {
	var lastErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Null is a Logger that discards everything. Used in tests and as a safe
// default.
type Null struct{}

func (Null) Debug(msg string, args ...any) {}
func (Null) Info(msg string, args ...any)  {}
func (Null) Warn(msg string, args ...any)  {}
func (Null) Error(msg string, args ...any) {}
func (Null) With(args ...any) Logger       { return Null{} }
func (Null) Shutdown() error               { return nil }
