// Package whisper transcribes audio through an OpenAI-compatible
// /audio/transcriptions endpoint, such as Groq's hosted Whisper.
package whisper

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	apperrors "github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/transcription"
)

// Name is the registry name of this backend.
const Name = "whisper"

// Provider uploads the file and returns the verbose transcript text.
type Provider struct {
	cfg      transcription.WhisperConfig
	language string
	client   oai.Client
}

var _ transcription.Provider = (*Provider)(nil)

// New creates a Provider. The SDK's own retries are disabled.
func New(cfg transcription.Config) (*Provider, error) {
	if cfg.Whisper.APIKey == "" {
		return nil, fmt.Errorf("whisper: api key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.Whisper.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Whisper.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Whisper.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}))
	}
	return &Provider{
		cfg:      cfg.Whisper,
		language: cfg.Language,
		client:   oai.NewClient(opts...),
	}, nil
}

// Factory is the registry factory for this backend.
func Factory(cfg transcription.Config) (transcription.Provider, error) {
	return New(cfg)
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

func (p *Provider) Execute(ctx context.Context, req transcription.Request) (transcription.Response, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return transcription.Response{}, fmt.Errorf("whisper: open audio: %w", err)
	}
	defer f.Close()

	params := oai.AudioTranscriptionNewParams{
		File:           f,
		Model:          oai.AudioModel(p.cfg.Model),
		ResponseFormat: oai.AudioResponseFormatVerboseJSON,
	}
	lang := req.Language
	if lang == "" {
		lang = p.language
	}
	if code := isoLanguage(lang); code != "" {
		params.Language = oai.String(code)
	}

	resp, err := p.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return transcription.Response{}, apperrors.ExternalServiceError(Name, err)
	}

	raw := resp.RawJSON()
	return transcription.Response{
		Text:     segmentsText(raw, resp.Text),
		Provider: Name,
		Duration: gjson.Get(raw, "duration").Float(),
	}, nil
}

// isoLanguage turns "en-US" into "en"; Whisper takes ISO-639-1 codes.
func isoLanguage(tag string) string {
	code, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(code)
}

// segmentsText joins segment texts one per line when the response carries
// segments, else returns text.
func segmentsText(raw, text string) string {
	segments := gjson.Get(raw, "segments.#.text").Array()
	if len(segments) == 0 {
		return strings.TrimSpace(text)
	}
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		if line := strings.TrimSpace(s.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
