package provider

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/visitnote/observability"
)

// WithTracing opens a span named "{service}.{provider}" around each Execute.
func WithTracing[I, O any](service string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, service: service}
	}
}

type tracingRR[I, O any] struct {
	inner   RequestResponse[I, O]
	service string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.service+"."+t.inner.Name(),
		attribute.String("provider", t.inner.Name()),
	)
	output, err := t.inner.Execute(ctx, input)
	observability.EndSpan(span, err)
	return output, err
}
