package document

import (
	"errors"
	"fmt"
	"strings"
)

// Config configures document generation.
type Config struct {
	// OutputDir receives the local PDF copies.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	// ObjectPrefix is the remote key prefix.
	ObjectPrefix string `yaml:"object_prefix" mapstructure:"object_prefix"`

	Renderer RendererConfig `yaml:"renderer" mapstructure:"renderer"`
}

// RendererConfig configures the wkhtmltopdf converter.
type RendererConfig struct {
	// Binary is the wkhtmltopdf executable. Empty searches PATH and the
	// WKHTMLTOPDF_PATH variable.
	Binary   string `yaml:"binary" mapstructure:"binary"`
	PageSize string `yaml:"page_size" mapstructure:"page_size"`
	DPI      uint   `yaml:"dpi" mapstructure:"dpi"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "./output"
	}
	if c.ObjectPrefix == "" {
		c.ObjectPrefix = "pdfs"
	}
	c.ObjectPrefix = strings.Trim(c.ObjectPrefix, "/")
	if c.Renderer.PageSize == "" {
		c.Renderer.PageSize = "A4"
	}
	if c.Renderer.DPI == 0 {
		c.Renderer.DPI = 96
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("document.output_dir is required")
	}
	if c.Renderer.DPI > 1200 {
		return fmt.Errorf("document.renderer.dpi must be at most 1200 (got: %d)", c.Renderer.DPI)
	}
	return nil
}
