package extraction

import (
	"context"
	"time"

	"github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/llm"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/observability"
	"github.com/kbukum/visitnote/provider"
)

// Completer is the LLM call the extractor depends on.
type Completer = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// Extractor asks the LLM for the visit JSON and cuts it out of the answer.
type Extractor struct {
	llm     Completer
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewExtractor creates an Extractor. metrics may be nil.
func NewExtractor(c Completer, metrics *observability.Metrics, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Get("extraction")
	}
	return &Extractor{llm: c, metrics: metrics, log: log}
}

// Extract returns the JSON span of the model's answer to the prompt built
// from transcript. An answer with no span yields errors.NoJSON.
func (e *Extractor) Extract(ctx context.Context, transcript string) (string, error) {
	ctx, span := observability.StartSpan(ctx, "extraction.extract")
	log := e.log.WithContext(ctx)

	answer, err := llm.Complete(ctx, e.llm, BuildPrompt(transcript))
	if err != nil {
		log.Error("completion failed", logger.ErrorFields("complete", err))
		observability.EndSpan(span, err)
		return "", err
	}

	start := time.Now()
	raw, ok := ExtractJSON(answer)
	if !ok {
		err := errors.NoJSON().WithDetail("answer_chars", len(answer))
		e.metrics.RecordStage(ctx, observability.StageExtract, err, time.Since(start))
		e.metrics.RecordError(ctx, string(errors.ErrCodeNoJSON), "extraction")
		log.Warn("no json in model answer", logger.Fields("answer_chars", len(answer)))
		observability.EndSpan(span, err)
		return "", err
	}
	e.metrics.RecordStage(ctx, observability.StageExtract, nil, time.Since(start))
	log.Debug("json extracted", logger.Fields("chars", len(raw)))
	observability.EndSpan(span, nil)
	return raw, nil
}
