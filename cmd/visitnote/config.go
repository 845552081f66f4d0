package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/visitnote/config"
	"github.com/kbukum/visitnote/internal/document"
	"github.com/kbukum/visitnote/internal/visit"
	"github.com/kbukum/visitnote/llm"
	"github.com/kbukum/visitnote/observability"
	"github.com/kbukum/visitnote/server"
	"github.com/kbukum/visitnote/storage"
	"github.com/kbukum/visitnote/transcription"
)

const serviceName = "visitnote"

// Config is the service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	LLM           llm.Config           `yaml:"llm" mapstructure:"llm"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Document      document.Config      `yaml:"document" mapstructure:"document"`
	Visit         visit.Config         `yaml:"visit" mapstructure:"visit"`
}

// envAliases binds the variable names the Flask service used.
var envAliases = map[string][]string{
	"transcription.deepgram.api_key": {"DG_API_KEY"},
	"transcription.whisper.api_key":  {"GROQ_API_KEY"},
	"llm.api_key":                    {"GROQ_API_KEY"},
	"storage.gcs.credentials_file":   {"FIREBASE_ADMIN_SDK"},
	"storage.gcs.bucket":             {"FIREBASE_STORAGE_BUCKET"},
	"server.port":                    {"PORT"},
}

func loadConfig(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	cfg.Name = serviceName
	opts = append([]config.LoaderOption{config.WithEnvAliases(envAliases)}, opts...)
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	return cfg, nil
}

// ApplyDefaults fills zero values in every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Observability.ServiceName = c.Name
	c.Observability.ServiceVersion = c.Version
	c.Observability.Environment = c.Environment
	c.Transcription.ApplyDefaults()
	c.LLM.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Document.ApplyDefaults()
	c.Visit.ApplyDefaults()
}

// Validate checks struct tags, then every section, and reports all failures.
func (c *Config) Validate() error {
	if err := config.ValidateStruct(c); err != nil {
		return err
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"service", &c.ServiceConfig},
		{"server", &c.Server},
		{"observability", &c.Observability},
		{"transcription", &c.Transcription},
		{"llm", &c.LLM},
		{"storage", &c.Storage},
		{"document", &c.Document},
		{"visit", &c.Visit},
	}
	var errs []error
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
