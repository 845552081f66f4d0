// Package provider defines the generic request/response provider used for
// every external backend in visitnote (speech-to-text, chat completion) and
// the middleware that wraps them.
//
// Backends register a typed factory in a Registry and are selected by name
// from configuration:
//
//	reg := provider.NewRegistry[transcription.Config, transcription.Provider]()
//	reg.RegisterFactory("deepgram", deepgram.NewFactory())
//	p, err := reg.Create(cfg.Provider, cfg)
//
// Middleware composes with Chain; the first middleware is outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics, observability.StageTranscribe),
//	    provider.WithTracing[In, Out]("visitnote"),
//	    provider.WithTimeout[In, Out](5*time.Minute),
//	)(raw)
package provider
