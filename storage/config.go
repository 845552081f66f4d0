package storage

import (
	"errors"
	"fmt"
	"time"
)

// Provider names.
const (
	ProviderGCS    = "gcs"
	ProviderS3     = "s3"
	ProviderLocal  = "local"
	ProviderMemory = "memory"
)

// Config selects and configures the storage backend.
type Config struct {
	// Provider is gcs, s3, local or memory. When empty it is gcs if a GCS
	// bucket is configured, else local.
	Provider string `yaml:"provider" mapstructure:"provider" validate:"omitempty,oneof=gcs s3 local memory"`
	// Timeout in seconds for one upload.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	GCS   GCSConfig   `yaml:"gcs" mapstructure:"gcs"`
	S3    S3Config    `yaml:"s3" mapstructure:"s3"`
	Local LocalConfig `yaml:"local" mapstructure:"local"`
}

// GCSConfig configures Google Cloud Storage, which backs Firebase Storage.
type GCSConfig struct {
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	// CredentialsFile is a service account JSON. Empty uses ADC.
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
}

// S3Config configures Amazon S3 or an S3-compatible service.
type S3Config struct {
	Bucket         string `yaml:"bucket" mapstructure:"bucket"`
	Region         string `yaml:"region" mapstructure:"region"`
	Endpoint       string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey      string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey      string `yaml:"secret_key" mapstructure:"secret_key"`
	ForcePathStyle bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// LocalConfig configures filesystem storage.
type LocalConfig struct {
	BasePath string `yaml:"base_path" mapstructure:"base_path"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		if c.GCS.Bucket != "" {
			c.Provider = ProviderGCS
		} else {
			c.Provider = ProviderLocal
		}
	}
	if c.Timeout == 0 {
		c.Timeout = 60
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
	if c.Local.BasePath == "" {
		c.Local.BasePath = "./storage"
	}
}

// Validate checks that the selected provider is configured.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGCS:
		if c.GCS.Bucket == "" {
			return errors.New("storage.gcs.bucket is required (FIREBASE_STORAGE_BUCKET)")
		}
	case ProviderS3:
		var errs []error
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required"))
		}
		if c.S3.Region == "" {
			errs = append(errs, errors.New("storage.s3.region is required"))
		}
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			errs = append(errs, errors.New("storage.s3.access_key and secret_key must be set together"))
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
	case ProviderLocal:
		if c.Local.BasePath == "" {
			return errors.New("storage.local.base_path is required")
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("storage.provider %q is not supported", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("storage.timeout must be non-negative (got: %d)", c.Timeout)
	}
	return nil
}

// TimeoutDuration returns Timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Bucket returns the bucket of the selected provider, if any.
func (c *Config) Bucket() string {
	switch c.Provider {
	case ProviderGCS:
		return c.GCS.Bucket
	case ProviderS3:
		return c.S3.Bucket
	}
	return ""
}
