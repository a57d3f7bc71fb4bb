// Package logging implements domain.Logger on top of log/slog
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/nettracex/netlistx/internal/domain"
)

// LevelFatal is logged by Fatal before the process exits
const LevelFatal = slog.LevelError + 4

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
	"fatal": LevelFatal,
}

// ParseLevel maps a configured level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToLower(name)]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Logger adapts a slog.Logger to domain.Logger. Fields are alternating keys
// and values. Once closed, entries are dropped.
type Logger struct {
	mu     sync.RWMutex
	out    *slog.Logger
	closer io.Closer
	closed bool
	exit   func(code int)
}

// New creates a logger writing text or JSON lines to w
func New(w io.Writer, level slog.Level, jsonFormat bool) *Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		out:  slog.New(handler),
		exit: os.Exit,
	}
}

// replaceLevel names LevelFatal
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelFatal {
		a.Value = slog.StringValue("FATAL")
	}
	return a
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return New(io.Discard, LevelFatal+1, false)
}

// FromConfig builds a logger for the logging section of the configuration
func FromConfig(cfg domain.LoggingConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	jsonFormat := cfg.Format == "json"

	switch cfg.Output {
	case "stdout":
		return New(os.Stdout, level, jsonFormat), nil
	case "stderr", "":
		return New(os.Stderr, level, jsonFormat), nil
	case "none":
		return NewNop(), nil
	case "file":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l := New(f, level, jsonFormat)
		l.closer = f
		return l, nil
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
}

// Close releases the log file, if any. Later entries, such as exit reports
// of processes still running, are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Debug implements domain.Logger
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info implements domain.Logger
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn implements domain.Logger
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error implements domain.Logger
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log(slog.LevelError, msg, fields)
}

// Fatal implements domain.Logger and exits the process
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.log(LevelFatal, msg, fields)
	l.exit(1)
}

func (l *Logger) log(level slog.Level, msg string, fields []interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return
	}
	l.out.Log(context.Background(), level, msg, fields...)
}
