package visit

import (
	"fmt"
	"os"
)

// Config configures request scratch files.
type Config struct {
	// TempDir holds uploaded audio and extraction files while a request runs.
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
	// KeepExtractions leaves the extraction JSON files in TempDir.
	KeepExtractions bool `yaml:"keep_extractions" mapstructure:"keep_extractions"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
}

// Validate creates TempDir if needed.
func (c *Config) Validate() error {
	if err := os.MkdirAll(c.TempDir, 0o750); err != nil {
		return fmt.Errorf("visit.temp_dir: %w", err)
	}
	return nil
}
