package telemetry

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// NewLogger returns a text logger writing to w. When a collector is
// configured, records are also handed to the otelslog bridge, which reads
// the global logger provider installed by Init.
func NewLogger(w io.Writer, collectorURL string) *slog.Logger {
	text := slog.NewTextHandler(w, nil)

	if collectorURL == "" {
		return slog.New(text)
	}

	return slog.New(NewMultiHandler(text, otelslog.NewHandler(ServiceName)))
}

// MultiHandler fans each record out to every wrapped handler that accepts
// its level.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler wraps handlers in the order records should reach them.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled is true as soon as one wrapped handler accepts level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a clone of record to each handler enabled for its level.
// A failing handler does not stop the others and its error is dropped.
func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			_ = handler.Handle(ctx, record.Clone())
		}
	}
	return nil
}

// WithAttrs returns a MultiHandler whose handlers all carry attrs.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

// WithGroup returns a MultiHandler whose handlers all open group name.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	derived := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		derived[i] = fn(handler)
	}
	return &MultiHandler{handlers: derived}
}
