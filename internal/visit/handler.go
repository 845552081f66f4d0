package visit

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/internal/document"
	"github.com/kbukum/visitnote/internal/extraction"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/observability"
	"github.com/kbukum/visitnote/util"
)

// StatusGenerated is the status value of a successful response.
const StatusGenerated = "PDF generated successfully"

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Extractor returns the JSON text extracted from a transcript.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (string, error)
}

// Generator produces the document from an extraction file.
type Generator interface {
	Generate(ctx context.Context, jsonPath string) (*document.Document, error)
}

// Handler runs the visit pipeline for one upload at a time per request.
type Handler struct {
	cfg         Config
	transcriber Transcriber
	extractor   Extractor
	generator   Generator
	metrics     *observability.Metrics
	log         *logger.Logger
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(cfg Config, t Transcriber, e Extractor, g Generator, metrics *observability.Metrics, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Get("visit")
	}
	return &Handler{
		cfg:         cfg,
		transcriber: t,
		extractor:   e,
		generator:   g,
		metrics:     metrics,
		log:         log.WithComponent("visit"),
	}
}

// Register mounts the pipeline route.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/process_transcription", h.Process)
}

// Process handles POST /process_transcription.
func (h *Handler) Process(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), "visit.process")
	log := h.log.WithContext(ctx)
	start := time.Now()

	doc, err := h.run(ctx, c, log)
	observability.EndSpan(span, err)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	span.SetAttributes(attribute.Bool("uploaded", doc.Uploaded))
	body := gin.H{
		"status":         StatusGenerated,
		"patient_number": doc.PatientNumber,
		"file":           doc.File,
		"object":         doc.Object,
		"uploaded":       doc.Uploaded,
	}
	if doc.UploadErr != nil {
		body["warning"] = "PDF generated but upload failed: " + doc.UploadErr.Error()
	}
	log.Info("visit processed", logger.Fields(
		"patient_number", doc.PatientNumber,
		"uploaded", doc.Uploaded,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	c.JSON(http.StatusOK, body)
}

func (h *Handler) run(ctx context.Context, c *gin.Context, log *logger.Logger) (*document.Document, error) {
	fh, err := c.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.PayloadTooLarge(tooLarge.Limit).WithCause(err)
		}
		return nil, errors.NoAudio().WithCause(err)
	}

	// names come from a fresh UUID, never from client input
	id := uuid.NewString()
	log = log.WithFields(logger.Fields("visit_id", id))
	audioPath := filepath.Join(h.cfg.TempDir, "audio-"+id+extension(fh.Filename))

	saveStart := time.Now()
	err = c.SaveUploadedFile(fh, audioPath)
	h.metrics.RecordStage(ctx, observability.StageUpload, err, time.Since(saveStart))
	if err != nil {
		os.Remove(audioPath)
		return nil, errors.GenerationFailed(err)
	}
	defer removeTemp(log, audioPath)
	log.Debug("audio saved", logger.Fields(logger.FieldPath, audioPath, "bytes", fh.Size))

	transcript, err := h.transcriber.Transcribe(ctx, audioPath)
	if err != nil || transcript == "" {
		return nil, errors.TranscriptionFailed(err)
	}

	raw, err := h.extractor.Extract(ctx, transcript)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNoJSON) {
			return nil, err
		}
		return nil, errors.GenerationFailed(err)
	}

	jsonPath := filepath.Join(h.cfg.TempDir, "extraction-"+id+".json")
	if err := extraction.WriteFile(jsonPath, raw); err != nil {
		return nil, errors.GenerationFailed(err)
	}
	if !h.cfg.KeepExtractions {
		defer os.Remove(jsonPath)
	}

	doc, err := h.generator.Generate(ctx, jsonPath)
	if err != nil {
		return nil, errors.GenerationFailed(err)
	}
	return doc, nil
}

// removeTemp runs deferred so the file goes even when a stage panics.
func removeTemp(log *logger.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove temp file", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
	}
}

func extension(filename string) string {
	if ext := util.SafeExtension(filename); ext != "" {
		return ext
	}
	return ".wav"
}

// writeError renders err with the legacy body for its code.
func (h *Handler) writeError(c *gin.Context, log *logger.Logger, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.GenerationFailed(err)
	}
	h.metrics.RecordError(c.Request.Context(), string(appErr.Code), "visit")

	fields := logger.Fields("code", appErr.Code, logger.FieldError, err.Error())
	switch appErr.Code {
	case errors.ErrCodeNoAudio:
		log.Warn("request rejected", fields)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
	case errors.ErrCodePayloadTooLarge:
		log.Warn("request rejected", fields)
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
	case errors.ErrCodeTranscriptionFailed, errors.ErrCodeNoJSON:
		log.Error("visit processing failed", fields)
		c.String(appErr.HTTPStatus, appErr.Message)
	default:
		log.Error("visit processing failed", fields)
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
	}
}
