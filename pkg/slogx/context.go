package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type ctxKey struct{}

type annotationsKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// annotations collects attributes added deeper in the handler chain so the
// request line logged by HTTPMiddleware can include them.
type annotations struct {
	mu   sync.Mutex
	args []any
}

func (a *annotations) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.args...)
}

// Annotate adds attributes to the enclosing request's access log line. It is
// a no-op outside HTTPMiddleware.
func Annotate(ctx context.Context, args ...any) {
	a, ok := ctx.Value(annotationsKey{}).(*annotations)
	if !ok {
		return
	}
	a.mu.Lock()
	a.args = append(a.args, args...)
	a.mu.Unlock()
}
