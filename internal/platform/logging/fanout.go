package logging

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler sends each record to every handler that accepts its level,
// e.g. pretty console output plus the rolling JSON file.
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler combines handlers. Each keeps its own level.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

// Enabled implements slog.Handler.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, next := range h.handlers {
		if next.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle implements slog.Handler. A failing destination does not stop the
// others; all failures are returned together.
func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, next := range h.handlers {
		if !next.Enabled(ctx, r.Level) {
			continue
		}

		if err := next.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
}

func (h *FanoutHandler) derive(fn func(slog.Handler) slog.Handler) *FanoutHandler {
	derived := make([]slog.Handler, len(h.handlers))
	for i, next := range h.handlers {
		derived[i] = fn(next)
	}

	return &FanoutHandler{handlers: derived}
}
