// Package logging wires slog up with context-carried attributes.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const attrKey contextKey = "attrKey"

// ContextHandler implements [slog.Handler] and adds to the log record
// any attributes previously attached to the context with [Attach].
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler creates a new ContextHandler with `handler` as the base.
func NewContextHandler(handler slog.Handler) ContextHandler {
	return ContextHandler{Handler: handler}
}

// Handle implements [slog.Handler].
func (h ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs, ok := ctx.Value(attrKey).([]slog.Attr)
	if !ok {
		return h.Handler.Handle(ctx, record)
	}

	record.AddAttrs(attrs...)

	return h.Handler.Handle(ctx, record)
}

// Attach creates a new context carrying the given attributes.
//
// They get logged later by the [ContextHandler] if given the resulting context.
func Attach(ctx context.Context, toAppend ...slog.Attr) context.Context {
	attrs, ok := ctx.Value(attrKey).([]slog.Attr)
	if !ok {
		attrs = []slog.Attr{}
	}

	attrs = append(attrs, toAppend...)
	return context.WithValue(ctx, attrKey, attrs)
}

// Setup installs the default logger in the requested format, either
// "text" or "json".
func Setup(format string) {
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}

	slog.SetDefault(slog.New(NewContextHandler(handler)))
}
