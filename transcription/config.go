package transcription

import (
	"fmt"
	"time"
)

// Config selects and configures the transcription backend.
type Config struct {
	// Provider is "deepgram", "google" or "whisper".
	Provider string `yaml:"provider" mapstructure:"provider" validate:"omitempty,oneof=deepgram google whisper"`
	Language string `yaml:"language" mapstructure:"language"`
	// Timeout in seconds for one transcription.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	Deepgram DeepgramConfig `yaml:"deepgram" mapstructure:"deepgram"`
	Google   GoogleConfig   `yaml:"google" mapstructure:"google"`
	Whisper  WhisperConfig  `yaml:"whisper" mapstructure:"whisper"`
}

// DeepgramConfig configures the Deepgram backend.
type DeepgramConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// GoogleConfig configures the Google Cloud Speech backend. An empty
// CredentialsFile uses Application Default Credentials.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	Model           string `yaml:"model" mapstructure:"model"`
	SampleRateHertz int32  `yaml:"sample_rate_hertz" mapstructure:"sample_rate_hertz"`
	MinSpeakers     int32  `yaml:"min_speakers" mapstructure:"min_speakers"`
	MaxSpeakers     int32  `yaml:"max_speakers" mapstructure:"max_speakers"`
}

// WhisperConfig configures an OpenAI-compatible audio transcription
// endpoint. The default is Groq's hosted Whisper.
type WhisperConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = "deepgram"
	}
	if c.Language == "" {
		c.Language = "en-US"
	}
	if c.Timeout == 0 {
		c.Timeout = 300
	}
	if c.Deepgram.BaseURL == "" {
		c.Deepgram.BaseURL = "https://api.deepgram.com/v1"
	}
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = "nova-2-medical"
	}
	if c.Google.Model == "" {
		c.Google.Model = "latest_long"
	}
	if c.Google.SampleRateHertz == 0 {
		c.Google.SampleRateHertz = 48000
	}
	if c.Google.MinSpeakers == 0 {
		c.Google.MinSpeakers = 2
	}
	if c.Google.MaxSpeakers == 0 {
		c.Google.MaxSpeakers = 2
	}
	if c.Whisper.BaseURL == "" {
		c.Whisper.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "whisper-large-v3"
	}
}

// Validate checks the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case "deepgram":
		if c.Deepgram.APIKey == "" {
			return fmt.Errorf("transcription.deepgram.api_key is required (DG_API_KEY)")
		}
	case "google":
		if c.Google.MinSpeakers > c.Google.MaxSpeakers {
			return fmt.Errorf("transcription.google.min_speakers must not exceed max_speakers")
		}
	case "whisper":
		if c.Whisper.APIKey == "" {
			return fmt.Errorf("transcription.whisper.api_key is required (GROQ_API_KEY)")
		}
	default:
		return fmt.Errorf("transcription.provider must be deepgram, google or whisper (got: %q)", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("transcription.timeout must be non-negative (got: %d)", c.Timeout)
	}
	return nil
}

// TimeoutDuration returns Timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
