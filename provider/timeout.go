package provider

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/visitnote/errors"
)

// WithTimeout bounds each Execute. A deadline hit inside the call is
// reported as a TIMEOUT AppError. d <= 0 disables the bound.
func WithTimeout[I, O any](d time.Duration) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		if d <= 0 {
			return inner
		}
		return &timeoutRR[I, O]{inner: inner, d: d}
	}
}

type timeoutRR[I, O any] struct {
	inner RequestResponse[I, O]
	d     time.Duration
}

func (t *timeoutRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *timeoutRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *timeoutRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()

	output, err := t.inner.Execute(ctx, input)
	if err != nil && stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, errors.Timeout(t.inner.Name()).WithCause(err)
	}
	return output, err
}
