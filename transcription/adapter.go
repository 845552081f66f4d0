package transcription

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/kbukum/visitnote/logger"
)

// Adapter is the single entry point the pipeline uses to turn an audio file
// into text.
type Adapter struct {
	provider Provider
	log      *logger.Logger
}

// NewAdapter wraps p. A nil log uses the global logger.
func NewAdapter(p Provider, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Get("transcription")
	}
	return &Adapter{provider: p, log: log}
}

// Transcribe returns the transcript of the file at path. A missing file is
// logged as "file not found" and reported as ErrAudioNotFound. Whitespace-only
// output is returned as "".
func (a *Adapter) Transcribe(ctx context.Context, path string) (string, error) {
	log := a.log.WithContext(ctx)
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			log.Error("file not found", logger.Fields(logger.FieldPath, path))
			return "", ErrAudioNotFound
		}
		return "", err
	}

	start := time.Now()
	resp, err := a.provider.Execute(ctx, Request{AudioPath: path})
	if err != nil {
		log.Error("transcription failed", logger.Fields(
			logger.FieldProvider, a.provider.Name(),
			logger.FieldError, err.Error(),
		))
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	log.Info("transcription finished", logger.Fields(
		logger.FieldProvider, a.provider.Name(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
		"chars", len(text),
	))
	return text, nil
}

// Name returns the backing provider's name.
func (a *Adapter) Name() string { return a.provider.Name() }

// IsAvailable reports whether the backing provider is configured.
func (a *Adapter) IsAvailable(ctx context.Context) bool { return a.provider.IsAvailable(ctx) }
