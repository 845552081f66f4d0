package transcription

import (
	"context"
	"errors"

	"github.com/kbukum/visitnote/provider"
)

// ErrAudioNotFound is returned when the audio path does not exist.
var ErrAudioNotFound = errors.New("audio file not found")

// Request is one transcription call.
type Request struct {
	// AudioPath is read fully into memory by the backend.
	AudioPath string `json:"audio_path"`
	// Language overrides the configured language when set.
	Language string `json:"language,omitempty"`
}

// Response is the backend result. Text is paragraph formatted with speaker
// labels when the backend supports diarization.
type Response struct {
	Text     string  `json:"text"`
	Provider string  `json:"provider"`
	Duration float64 `json:"duration,omitempty"`
}

// Provider is implemented by speech-to-text backends.
type Provider interface {
	provider.RequestResponse[Request, Response]
}

// NewRegistry creates a registry for transcription backends.
func NewRegistry() *provider.Registry[Config, Provider] {
	return provider.NewRegistry[Config, Provider]()
}

// Func adapts fn to Provider. Tests use it in place of a real backend.
func Func(name string, fn func(ctx context.Context, req Request) (Response, error)) Provider {
	return provider.Func(name, fn)
}
