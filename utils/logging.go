package utils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	LoggingFormatText = "text"
	LoggingFormatJson = "json"
)

// NewLogger builds the process logger. The json format is meant for log
// collectors that read "severity" and "message" keys.
func NewLogger(format string, level slog.Level) *slog.Logger {
	if format == LoggingFormatJson {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: severityAttributeReplacer,
		}))
	}
	return slog.New(newConsoleHandler(os.Stderr, level, true))
}

func ParseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func severityAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
		level, _ := a.Value.Any().(slog.Level)
		switch {
		case level < slog.LevelInfo:
			a.Value = slog.StringValue("DEBUG")
		case level < slog.LevelWarn:
			a.Value = slog.StringValue("INFO")
		case level < slog.LevelError:
			a.Value = slog.StringValue("WARNING")
		default:
			a.Value = slog.StringValue("ERROR")
		}
	}
	return a
}

// consoleHandler prints "time LEVEL message" followed by the attributes in text form
type consoleHandler struct {
	attrs    slog.Handler
	useColor bool

	mu *sync.Mutex
	w  io.Writer
}

func newConsoleHandler(w io.Writer, level slog.Level, useColor bool) *consoleHandler {
	return &consoleHandler{
		attrs: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
					return slog.Attr{}
				}
				return a
			},
		}),
		useColor: useColor,
		mu:       &sync.Mutex{},
		w:        w,
	}
}

func (h *consoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.attrs.Enabled(ctx, level)
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(r.Time.Format(time.RFC3339))
	buf.WriteByte(' ')
	buf.WriteString(h.levelString(r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.WriteByte(' ')

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.w.Write(buf.Bytes()); err != nil {
		return err
	}
	return h.attrs.Handle(ctx, r)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{attrs: h.attrs.WithAttrs(attrs), useColor: h.useColor, mu: h.mu, w: h.w}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return &consoleHandler{attrs: h.attrs.WithGroup(name), useColor: h.useColor, mu: h.mu, w: h.w}
}

func (h *consoleHandler) levelString(level slog.Level) string {
	s := level.String()
	if !h.useColor {
		return s
	}
	color := "31" // red
	switch {
	case level < slog.LevelInfo:
		color = "35"
	case level < slog.LevelWarn:
		color = "34"
	case level < slog.LevelError:
		color = "33"
	}
	return "\x1b[" + color + "m" + s + "\x1b[0m"
}
