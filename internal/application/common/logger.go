package common

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger provides structured logging for handlers and adapters
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Log levels
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
	orderContextKey
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// WriterLogger writes one line per entry: timestamp, level, message, then sorted key=value pairs.
// Entries below the minimum level are dropped.
type WriterLogger struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel int
	now      func() time.Time
}

// NewWriterLogger creates a logger writing to w at or above minLevel
func NewWriterLogger(w io.Writer, minLevel string) *WriterLogger {
	return &WriterLogger{w: w, minLevel: levelRank(minLevel), now: time.Now}
}

func (l *WriterLogger) Log(level, message string, metadata map[string]interface{}) {
	if levelRank(level) < l.minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", l.now().UTC().Format(time.RFC3339), strings.ToUpper(level), message)

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, b.String())
}

// NormalizeLevel maps config spellings (debug, info, warn, error) onto the
// level constants; unknown values read as LevelInfo
func NormalizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn, "WARN":
		return LevelWarn
	case LevelError:
		return LevelError
	}
	return LevelInfo
}

func levelRank(level string) int {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn, "WARN":
		return 2
	case LevelError:
		return 3
	}
	return 1
}

// MultiLogger fans each entry out to every wrapped logger
type MultiLogger []Logger

func (m MultiLogger) Log(level, message string, metadata map[string]interface{}) {
	for _, l := range m {
		l.Log(level, message, metadata)
	}
}
