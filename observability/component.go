package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/visitnote/component"
)

// Telemetry owns the meter and tracer providers for the process.
type Telemetry struct {
	cfg     Config
	meter   *sdkmetric.MeterProvider
	tracer  *sdktrace.TracerProvider
	handler http.Handler
	metrics *Metrics
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates an unstarted Telemetry.
func NewTelemetry(cfg Config) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{cfg: cfg}
}

func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the providers and creates the pipeline instruments.
func (t *Telemetry) Start(ctx context.Context) error {
	if t.cfg.MetricsEnabled {
		mp, h, err := InitMeter(t.cfg)
		if err != nil {
			return err
		}
		t.meter, t.handler = mp, h
	}

	tp, err := InitTracer(ctx, t.cfg)
	if err != nil {
		return err
	}
	t.tracer = tp

	m, err := NewMetrics(Meter())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	t.metrics = m
	return nil
}

// Stop flushes and shuts down both providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tracer != nil {
		errs = append(errs, t.tracer.Shutdown(ctx))
	}
	if t.meter != nil {
		errs = append(errs, t.meter.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

func (t *Telemetry) Health(context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if t.metrics == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	}
	return h
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	details := "metrics disabled"
	if t.cfg.MetricsEnabled {
		details = "prometheus"
	}
	if t.cfg.TracingEndpoint != "" {
		details += ", otlp " + t.cfg.TracingEndpoint
	}
	return component.Description{Name: "Telemetry", Type: "observability", Details: details}
}

// Handler is the Prometheus scrape handler, nil when metrics are disabled.
func (t *Telemetry) Handler() http.Handler { return t.handler }

// Metrics returns the pipeline instruments, nil before Start.
func (t *Telemetry) Metrics() *Metrics { return t.metrics }
