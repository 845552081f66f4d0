// Package google transcribes audio with Google Cloud Speech-to-Text using
// long-running recognition and speaker diarization.
package google

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"

	apperrors "github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/transcription"
)

// Name is the registry name of this backend.
const Name = "google"

// Provider sends the audio inline and waits for the operation to finish.
type Provider struct {
	cfg      transcription.GoogleConfig
	language string
	client   *speech.Client
}

var _ transcription.Provider = (*Provider)(nil)

// New dials the Speech API.
func New(ctx context.Context, cfg transcription.Config) (*Provider, error) {
	var opts []option.ClientOption
	if cfg.Google.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Google.CredentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google speech: create client: %w", err)
	}
	return &Provider{cfg: cfg.Google, language: cfg.Language, client: client}, nil
}

// Factory is the registry factory for this backend.
func Factory(cfg transcription.Config) (transcription.Provider, error) {
	return New(context.Background(), cfg)
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return p.client != nil }

// Close releases the gRPC connection.
func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Execute runs LongRunningRecognize and formats the result by speaker.
func (p *Provider) Execute(ctx context.Context, req transcription.Request) (transcription.Response, error) {
	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return transcription.Response{}, fmt.Errorf("google speech: read audio: %w", err)
	}

	lang := req.Language
	if lang == "" {
		lang = p.language
	}

	op, err := p.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: p.recognitionConfig(req.AudioPath, lang),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return transcription.Response{}, apperrors.ExternalServiceError(Name, err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return transcription.Response{}, apperrors.ExternalServiceError(Name, err)
	}

	var duration float64
	if t := resp.GetTotalBilledTime(); t != nil {
		duration = t.AsDuration().Seconds()
	}
	return transcription.Response{
		Text:     formatResults(resp.GetResults()),
		Provider: Name,
		Duration: duration,
	}, nil
}

func (p *Provider) recognitionConfig(path, lang string) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               lang,
		Model:                      p.cfg.Model,
		EnableAutomaticPunctuation: true,
		DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
			MinSpeakerCount:          p.cfg.MinSpeakers,
			MaxSpeakerCount:          p.cfg.MaxSpeakers,
		},
	}
	cfg.Encoding = encodingFor(path)
	if cfg.Encoding == speechpb.RecognitionConfig_OGG_OPUS || cfg.Encoding == speechpb.RecognitionConfig_WEBM_OPUS {
		cfg.SampleRateHertz = p.cfg.SampleRateHertz
	}
	return cfg
}

// encodingFor maps the file extension to an encoding. WAV and FLAC carry
// their own headers and are left unspecified.
func encodingFor(path string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	case ".webm":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

// formatResults groups the diarized words of the final result into
// "Speaker N: ..." paragraphs. Without speaker tags the per-result
// transcripts are joined instead.
func formatResults(results []*speechpb.SpeechRecognitionResult) string {
	if len(results) == 0 {
		return ""
	}

	last := results[len(results)-1]
	if alts := last.GetAlternatives(); len(alts) > 0 {
		if text := paragraphs(alts[0].GetWords()); text != "" {
			return text
		}
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		if alts := r.GetAlternatives(); len(alts) > 0 {
			if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

func paragraphs(words []*speechpb.WordInfo) string {
	var (
		out     []string
		current []string
		speaker int32
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, fmt.Sprintf("Speaker %d: %s", speaker, strings.Join(current, " ")))
			current = current[:0]
		}
	}
	for _, w := range words {
		tag := w.GetSpeakerTag()
		if tag == 0 {
			return ""
		}
		if tag != speaker {
			flush()
			speaker = tag
		}
		current = append(current, w.GetWord())
	}
	flush()
	return strings.Join(out, "\n\n")
}
