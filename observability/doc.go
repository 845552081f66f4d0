// Package observability wires OpenTelemetry for visitnote: a meter provider
// exported to Prometheus (served on /metrics) and an optional OTLP trace
// exporter. Pipeline stages record through Metrics and StartSpan.
package observability
