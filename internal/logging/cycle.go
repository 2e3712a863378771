package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type cycleKey struct{}

// NewCycleID returns a short random id for one fetch cycle.
func NewCycleID() string {
	return uuid.NewString()[:8]
}

// WithCycleID returns a context carrying the cycle id.
func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleKey{}, id)
}

// CycleID extracts the cycle id from ctx, returning ("", false) if not present.
func CycleID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(cycleKey{}).(string)
	return id, ok && id != ""
}

// Handler wraps an existing slog.Handler to add a "cycle_id" attribute
// when the context carries one.
type Handler struct {
	inner slog.Handler
}

// NewHandler creates a cycle-aware handler wrapping the given handler.
func NewHandler(inner slog.Handler) *Handler {
	return &Handler{inner: inner}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := CycleID(ctx); ok {
		r.AddAttrs(slog.String("cycle_id", id))
	}
	if err := h.inner.Handle(ctx, r); err != nil {
		return fmt.Errorf("cycle handler: %w", err)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{inner: h.inner.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name)}
}
