package contract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// CLIHandler is a slog.Handler that writes one compact line per record.
type CLIHandler struct {
	writer io.Writer
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

var _ slog.Handler = &CLIHandler{} // Compile-time check

// NewCLIHandler creates a handler that drops records below level.
func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{writer: w, level: level}
}

// Enabled implements slog.Handler.
func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteString(" ")
	if h.group != "" {
		b.WriteString("[" + h.group + "] ")
	}
	b.WriteString(r.Message)

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(attrs, " "))
	}

	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *CLIHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

// NewLogger returns a logger that writes compact lines to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewCLIHandler(w, level))
}

// ParseLogLevel converts a string log level to slog.Level.
// Defaults to slog.LevelWarn for unrecognized strings so a plain run stays quiet.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
