package transcription

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/visitnote/logger"
)

func audioFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "visit.mp3")
	if err := os.WriteFile(p, []byte("ID3"), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAdapterReturnsTrimmedText(t *testing.T) {
	var gotPath string
	p := Func("fake", func(_ context.Context, req Request) (Response, error) {
		gotPath = req.AudioPath
		return Response{Text: "\nSpeaker 0: hello\n"}, nil
	})
	path := audioFile(t)

	text, err := NewAdapter(p, logger.Nop()).Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "Speaker 0: hello" {
		t.Errorf("unexpected text %q", text)
	}
	if gotPath != path {
		t.Errorf("expected path %s, got %s", path, gotPath)
	}
}

func TestAdapterMissingFile(t *testing.T) {
	called := false
	p := Func("fake", func(context.Context, Request) (Response, error) {
		called = true
		return Response{}, nil
	})

	_, err := NewAdapter(p, logger.Nop()).Transcribe(context.Background(), "/nonexistent/visit.mp3")
	if !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
	if called {
		t.Error("provider must not be called for a missing file")
	}
}

func TestAdapterPropagatesProviderError(t *testing.T) {
	boom := errors.New("upstream down")
	p := Func("fake", func(context.Context, Request) (Response, error) { return Response{}, boom })

	if _, err := NewAdapter(p, logger.Nop()).Transcribe(context.Background(), audioFile(t)); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Provider != "deepgram" || cfg.Deepgram.Model != "nova-2-medical" || cfg.Timeout != 300 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing Deepgram key to fail")
	}
	cfg.Deepgram.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}

	cfg.Provider = "assemblyai"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown provider to fail")
	}
	cfg.Provider = "whisper"
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing whisper key to fail")
	}
	cfg.Provider = "google"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected google with ADC to validate: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFactory("fake", func(Config) (Provider, error) {
		return Func("fake", func(context.Context, Request) (Response, error) { return Response{Text: "ok"}, nil }), nil
	})
	p, err := reg.Create("fake", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "fake" {
		t.Errorf("unexpected name %q", p.Name())
	}
}
