package observability

import "fmt"

// Trace exporters.
const (
	ExporterOTLPHTTP = "otlphttp"
	ExporterOTLPGRPC = "otlpgrpc"
	ExporterStdout   = "stdout"
)

// Config configures telemetry.
type Config struct {
	ServiceName    string `yaml:"-" mapstructure:"-"`
	ServiceVersion string `yaml:"-" mapstructure:"-"`
	Environment    string `yaml:"-" mapstructure:"-"`

	MetricsEnabled bool `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`

	// TracingExporter is otlphttp, otlpgrpc or stdout. The OTLP exporters
	// need TracingEndpoint; without one spans stay local.
	TracingExporter string  `yaml:"tracing_exporter" mapstructure:"tracing_exporter"`
	TracingEndpoint string  `yaml:"tracing_endpoint" mapstructure:"tracing_endpoint"`
	TracingInsecure bool    `yaml:"tracing_insecure" mapstructure:"tracing_insecure"`
	SampleRate      float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.TracingExporter == "" {
		c.TracingExporter = ExporterOTLPHTTP
	}
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0,1] (got: %v)", c.SampleRate)
	}
	switch c.TracingExporter {
	case "", ExporterOTLPHTTP, ExporterOTLPGRPC, ExporterStdout:
	default:
		return fmt.Errorf("observability.tracing_exporter %q is not one of otlphttp, otlpgrpc, stdout", c.TracingExporter)
	}
	return nil
}
