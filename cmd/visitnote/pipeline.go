package main

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/visitnote/component"
	"github.com/kbukum/visitnote/internal/document"
	"github.com/kbukum/visitnote/internal/extraction"
	"github.com/kbukum/visitnote/internal/visit"
	"github.com/kbukum/visitnote/llm"
	"github.com/kbukum/visitnote/llm/openai"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/observability"
	"github.com/kbukum/visitnote/provider"
	"github.com/kbukum/visitnote/server"
	"github.com/kbukum/visitnote/storage"
	"github.com/kbukum/visitnote/transcription"
	"github.com/kbukum/visitnote/transcription/deepgram"
	"github.com/kbukum/visitnote/transcription/google"
	"github.com/kbukum/visitnote/transcription/whisper"
	"github.com/kbukum/visitnote/util"
)

// pipeline builds the transcription and LLM providers, the document
// generator and the visit handler, and mounts the routes. It starts after
// telemetry and storage and before the HTTP server.
type pipeline struct {
	cfg       *Config
	server    *server.Server
	telemetry *observability.Telemetry
	storage   *storage.Component
	checker   func(ctx context.Context) []component.Health
	routes    func(method, path string)
	log       *logger.Logger

	transcriber transcription.Provider
	completer   llm.Provider
}

var (
	_ component.Component   = (*pipeline)(nil)
	_ component.Describable = (*pipeline)(nil)
)

func (p *pipeline) Name() string { return "pipeline" }

func (p *pipeline) Start(context.Context) error {
	metrics := p.telemetry.Metrics()

	tReg := transcription.NewRegistry()
	tReg.RegisterFactory(deepgram.Name, deepgram.Factory)
	tReg.RegisterFactory(google.Name, google.Factory)
	tReg.RegisterFactory(whisper.Name, whisper.Factory)
	tp, err := tReg.Create(p.cfg.Transcription.Provider, p.cfg.Transcription)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	p.transcriber = tp
	transcriber := provider.Chain(
		provider.WithTracing[transcription.Request, transcription.Response]("transcription"),
		provider.WithMetrics[transcription.Request, transcription.Response](metrics, observability.StageTranscribe),
		provider.WithLogging[transcription.Request, transcription.Response](p.log.WithComponent("transcription")),
		provider.WithTimeout[transcription.Request, transcription.Response](p.cfg.Transcription.TimeoutDuration()),
	)(tp)

	lReg := llm.NewRegistry()
	lReg.RegisterFactory(openai.Name, openai.Factory)
	lp, err := lReg.Create(p.cfg.LLM.Provider, p.cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	p.completer = lp
	completer := provider.Chain(
		provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse]("llm"),
		provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics, observability.StageComplete),
		provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](p.log.WithComponent("llm")),
		provider.WithTimeout[llm.CompletionRequest, llm.CompletionResponse](p.cfg.LLM.TimeoutDuration()),
	)(lp)

	renderer := document.NewWKHTMLRenderer(p.cfg.Document.Renderer)
	if !renderer.Available() {
		p.log.Warn("wkhtmltopdf not found, document generation will fail until it is installed")
	}
	generator := document.NewGenerator(p.cfg.Document, renderer, p.storage,
		document.WithMetrics(metrics),
		document.WithUploadTimeout(p.cfg.Storage.TimeoutDuration()),
		document.WithLogger(p.log.WithComponent("document")),
	)

	handler := visit.NewHandler(p.cfg.Visit,
		transcription.NewAdapter(transcriber, p.log.WithComponent("transcription")),
		extraction.NewExtractor(completer, metrics, p.log.WithComponent("extraction")),
		generator,
		metrics,
		p.log,
	)

	p.log.Info("pipeline ready", logger.Fields(
		"transcription", tp.Name(),
		"llm", lp.Name(),
		"model", p.cfg.LLM.Model,
		"llm_key", util.MaskSecret(p.cfg.LLM.APIKey, 4),
	))

	p.server.RegisterDefaultEndpoints(p.cfg.Name, p.checker, p.telemetry.Handler())
	handler.Register(p.server.Engine())
	p.routes("POST", "/process_transcription")
	return nil
}

func (p *pipeline) Stop(context.Context) error {
	if c, ok := p.transcriber.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *pipeline) Health(ctx context.Context) component.Health {
	h := component.Health{Name: p.Name(), Status: component.StatusHealthy}
	switch {
	case p.transcriber == nil || p.completer == nil:
		h.Status, h.Message = component.StatusUnhealthy, "pipeline not started"
	case !p.transcriber.IsAvailable(ctx):
		h.Status, h.Message = component.StatusDegraded, p.transcriber.Name()+" not configured"
	case !p.completer.IsAvailable(ctx):
		h.Status, h.Message = component.StatusDegraded, p.completer.Name()+" not configured"
	}
	return h
}

func (p *pipeline) Describe() component.Description {
	return component.Description{
		Name:    "Pipeline",
		Type:    "pipeline",
		Details: fmt.Sprintf("transcription=%s llm=%s model=%s", p.cfg.Transcription.Provider, p.cfg.LLM.Provider, p.cfg.LLM.Model),
	}
}
