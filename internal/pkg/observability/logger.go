package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// NewLogger returns a JSON logger writing to w. When cfg is enabled every record
// is also bridged to the global OpenTelemetry logger provider, so Setup must run first.
func NewLogger(w io.Writer, level slog.Level, cfg Config) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	if cfg.Enabled() {
		handler = teeHandler{handler, otelslog.NewHandler(cfg.ServiceName)}
	}
	return slog.New(handler).With("service", cfg.ServiceName)
}

// teeHandler forwards each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	for _, h := range t {
		if h.Enabled(ctx, record.Level) {
			err = errors.Join(err, h.Handle(ctx, record.Clone()))
		}
	}
	return err
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}
