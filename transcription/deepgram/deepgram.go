// Package deepgram transcribes prerecorded audio with the Deepgram REST API.
package deepgram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/transcription"
)

// Name is the registry name of this backend.
const Name = "deepgram"

const transcriptPath = "results.channels.0.alternatives.0.paragraphs.transcript"

// Provider calls POST {base}/listen with the whole file as the body.
type Provider struct {
	cfg      transcription.DeepgramConfig
	language string
	client   *http.Client
}

var _ transcription.Provider = (*Provider)(nil)

// New creates a Provider. The HTTP client timeout is the transcription timeout.
func New(cfg transcription.Config) (*Provider, error) {
	if cfg.Deepgram.APIKey == "" {
		return nil, fmt.Errorf("deepgram: api key is required")
	}
	return &Provider{
		cfg:      cfg.Deepgram,
		language: cfg.Language,
		client:   &http.Client{Timeout: cfg.TimeoutDuration()},
	}, nil
}

// Factory is the registry factory for this backend.
func Factory(cfg transcription.Config) (transcription.Provider, error) {
	return New(cfg)
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// Execute uploads the audio and returns the paragraph-formatted transcript.
func (p *Provider) Execute(ctx context.Context, req transcription.Request) (transcription.Response, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return transcription.Response{}, fmt.Errorf("deepgram: read audio: %w", err)
	}

	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.listenURL(lang), bytes.NewReader(audio))
	if err != nil {
		return transcription.Response{}, fmt.Errorf("deepgram: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", contentType(req.AudioPath, audio))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return transcription.Response{}, apperrors.ExternalServiceError(Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transcription.Response{}, apperrors.ExternalServiceError(Name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transcription.Response{}, apperrors.ExternalServiceError(Name,
			fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body)))
	}

	parsed := gjson.ParseBytes(body)
	return transcription.Response{
		Text:     parsed.Get(transcriptPath).String(),
		Provider: Name,
		Duration: parsed.Get("metadata.duration").Float(),
	}, nil
}

func (p *Provider) listenURL(lang string) string {
	q := url.Values{}
	q.Set("model", p.cfg.Model)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	q.Set("diarize", "true")
	q.Set("paragraphs", "true")
	q.Set("language", lang)
	return strings.TrimRight(p.cfg.BaseURL, "/") + "/listen?" + q.Encode()
}

func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

func snippet(b []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
