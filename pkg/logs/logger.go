package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a file logger.
type Options struct {
	File  string // defaults to ./lineedit.log
	Level string // debug, info, warn or error; defaults to info
}

// Logger writes JSON lines with a timestamp, level, event name and fields.
// A disabled Logger (and a nil one) drops every event.
type Logger struct {
	log     *slog.Logger
	closer  io.Closer
	enabled bool
}

// New returns a logger writing to a size-rotated file.
func New(opts Options) *Logger {
	if opts.File == "" {
		opts.File = filepath.Join(".", "lineedit.log")
	}
	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	l := NewWithWriter(w, opts.Level)
	l.closer = w
	return l
}

// NewWithWriter returns a logger writing JSON lines to w.
func NewWithWriter(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{log: slog.New(h), enabled: true}
}

// NewFromEnv returns a logger if LINEEDIT_LOG is set to a truthy value or if
// LINEEDIT_LOG_FILE is provided. Otherwise it returns a disabled logger.
func NewFromEnv() *Logger {
	lf := os.Getenv("LINEEDIT_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("LINEEDIT_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return Discard()
	}
	return New(Options{File: lf, Level: os.Getenv("LINEEDIT_LOG_LEVEL")})
}

// Discard returns a disabled logger.
func Discard() *Logger { return &Logger{} }

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Enabled reports whether events are written.
func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// Event writes an info level event with the given fields.
// Common fields: command, step, cursor, lines, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	l.Log(slog.LevelInfo, event, fields)
}

// Log writes an event at level. Fields are emitted in key order.
func (l *Logger) Log(level slog.Level, event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.log.LogAttrs(context.Background(), level, event, attrs...)
}

// Close closes the underlying file if there is one.
func (l *Logger) Close() {
	if !l.Enabled() || l.closer == nil {
		return
	}
	_ = l.closer.Close()
}
