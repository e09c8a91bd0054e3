package logger

import (
	"context"
	"log/slog"
)

type featureKey struct{}

// ContextWithFeature stores the feature id so every record logged with the
// returned context carries it.
func ContextWithFeature(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, featureKey{}, id)
}

// FeatureFromContext returns the feature id stored by ContextWithFeature.
func FeatureFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(featureKey{}).(string)
	return id, ok && id != ""
}

type contextHandler struct {
	next slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if id, ok := FeatureFromContext(ctx); ok {
		rec.AddAttrs(Feature(id))
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
