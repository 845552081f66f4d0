package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const instrumentationName = "github.com/kbukum/visitnote"

// InitMeter builds a meter provider backed by a private Prometheus registry
// and returns the scrape handler for it. The provider is also set globally.
func InitMeter(cfg Config) (*sdkmetric.MeterProvider, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(newResource(cfg)),
	)
	otel.SetMeterProvider(mp)

	return mp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// Meter returns the visitnote meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

func newResource(cfg Config) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)
}

// Pipeline stage names used as the "stage" attribute.
const (
	StageUpload     = "upload"
	StageTranscribe = "transcribe"
	StageComplete   = "complete"
	StageExtract    = "extract"
	StageGenerate   = "generate"
	StageRender     = "render"
	StageStore      = "store"
)

// Metrics holds the instruments recorded by the pipeline. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	stageTotal    metric.Int64Counter
	stageDuration metric.Float64Histogram
	documents     metric.Int64Counter
	errors        metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	stageTotal, err := meter.Int64Counter("visitnote.stage.total",
		metric.WithDescription("Pipeline stage executions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage counter: %w", err)
	}
	stageDuration, err := meter.Float64Histogram("visitnote.stage.duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage histogram: %w", err)
	}
	documents, err := meter.Int64Counter("visitnote.documents.total",
		metric.WithDescription("Generated documents by upload outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating documents counter: %w", err)
	}
	errs, err := meter.Int64Counter("visitnote.errors.total",
		metric.WithDescription("Errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}
	return &Metrics{
		stageTotal:    stageTotal,
		stageDuration: stageDuration,
		documents:     documents,
		errors:        errs,
	}, nil
}

// RecordStage records one stage execution.
func (m *Metrics) RecordStage(ctx context.Context, stage string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	))
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordDocument counts a generated document.
func (m *Metrics) RecordDocument(ctx context.Context, uploaded bool) {
	if m == nil {
		return
	}
	m.documents.Add(ctx, 1, metric.WithAttributes(attribute.Bool("uploaded", uploaded)))
}

// RecordError counts an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
