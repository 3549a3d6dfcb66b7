package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is a structured logger interface for merkleberry.
// It wraps slog.Logger with convenience methods for common logging patterns.
type Logger struct {
	*slog.Logger
}

// New creates a new Logger with the given handler.
func New(handler slog.Handler) *Logger {
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a new Logger with text output format.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}
	return New(slog.NewTextHandler(w, opts))
}

// NewJSONLogger creates a new Logger with JSON output format.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}
	return New(slog.NewJSONHandler(w, opts))
}

// NewDevelopmentLogger creates a logger suitable for development.
// Uses text format with debug level output to stderr.
func NewDevelopmentLogger() *Logger {
	return NewTextLogger(os.Stderr, slog.LevelDebug)
}

// NewProductionLogger creates a logger suitable for production.
// Uses JSON format with info level output to stdout.
func NewProductionLogger() *Logger {
	return NewJSONLogger(os.Stdout, slog.LevelInfo)
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() *Logger {
	return New(nopHandler{})
}

// With returns a new Logger with the given attributes added to every log entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// WithComponent returns a new Logger with a component attribute.
func (l *Logger) WithComponent(name string) *Logger {
	return l.With(Component(name))
}

// WithNamespace returns a new Logger with a namespace attribute.
func (l *Logger) WithNamespace(ns string) *Logger {
	return l.With(Namespace(ns))
}

// Common attribute constructors for transparency-log fields.

// Component creates a component attribute for identifying the source module.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Namespace creates a namespace attribute.
func Namespace(ns string) slog.Attr {
	return slog.String("namespace", ns)
}

// LeafIndex creates a leaf index attribute.
func LeafIndex(i int64) slog.Attr {
	return slog.Int64("leaf_index", i)
}

// LeafCount creates a leaf count attribute.
func LeafCount(n int64) slog.Attr {
	return slog.Int64("leaf_count", n)
}

// Root creates a root hash attribute (base64url-encoded).
func Root(root string) slog.Attr {
	return slog.String("root", root)
}

// LeafHash creates a leaf hash attribute (base64url-encoded).
func LeafHash(hash string) slog.Attr {
	return slog.String("leaf_hash", hash)
}

// TreeLevel creates a frontier/tree level attribute.
func TreeLevel(level int) slog.Attr {
	return slog.Int("level", level)
}

// Key creates a storage key attribute.
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Backend creates a storage backend attribute.
func Backend(name string) slog.Attr {
	return slog.String("backend", name)
}

// Siblings creates a sibling path length attribute.
func Siblings(n int) slog.Attr {
	return slog.Int("siblings", n)
}

// Count creates a count attribute.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Size creates a size attribute in bytes.
func Size(n int) slog.Attr {
	return slog.Int("size_bytes", n)
}

// Duration creates a duration attribute in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64("duration_ms", float64(d.Nanoseconds())/1e6)
}

// Version creates a format version attribute.
func Version(v int) slog.Attr {
	return slog.Int("version", v)
}

// Error creates an error attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Reason creates a reason attribute.
func Reason(r string) slog.Attr {
	return slog.String("reason", r)
}

// nopHandler is a slog.Handler that discards all logs.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }
