package document

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/visitnote/internal/extraction"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/observability"
)

// Uploader is the storage operation the generator needs.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
}

// Document is the outcome of one generation.
type Document struct {
	PatientNumber int64
	// File is the local PDF path.
	File string
	// Object is the remote key.
	Object   string
	Uploaded bool
	// UploadErr is set when the PDF was rendered but not uploaded.
	UploadErr error
}

// Generator produces visit documents.
type Generator struct {
	cfg           Config
	renderer      Renderer
	uploader      Uploader
	uploadTimeout time.Duration
	metrics       *observability.Metrics
	log           *logger.Logger

	now   func() time.Time
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRand sets the random source for follow-ups and patient numbers.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithMetrics records stage metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithUploadTimeout bounds each upload. Zero means no bound.
func WithUploadTimeout(d time.Duration) Option {
	return func(g *Generator) { g.uploadTimeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator creates a Generator writing into cfg.OutputDir.
func NewGenerator(cfg Config, r Renderer, u Uploader, opts ...Option) *Generator {
	cfg.ApplyDefaults()
	g := &Generator{
		cfg:      cfg,
		renderer: r,
		uploader: u,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Get("document")
	}
	return g
}

func (g *Generator) newRecord(r *extraction.Result) *Record {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return NewRecord(r, g.now(), g.rng)
}

// Generate reads the extraction file at jsonPath and produces the PDF. An
// error means no PDF was produced; a failed upload is reported on the
// Document instead.
func (g *Generator) Generate(ctx context.Context, jsonPath string) (doc *Document, err error) {
	ctx, span := observability.StartSpan(ctx, "document.generate")
	start := time.Now()
	defer func() {
		g.metrics.RecordStage(ctx, observability.StageGenerate, err, time.Since(start))
		observability.EndSpan(span, err)
	}()
	log := g.log.WithContext(ctx)

	result, err := extraction.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	rec := g.newRecord(result)
	span.SetAttributes(attribute.Int64("patient_number", rec.PatientNumber))

	html, err := RenderHTML(rec)
	if err != nil {
		return nil, err
	}

	name := strconv.FormatInt(rec.PatientNumber, 10) + ".pdf"
	doc = &Document{
		PatientNumber: rec.PatientNumber,
		File:          filepath.Join(g.cfg.OutputDir, name),
		Object:        path.Join(g.cfg.ObjectPrefix, name),
	}

	renderStart := time.Now()
	err = g.writePDF(ctx, html, doc.File)
	g.metrics.RecordStage(ctx, observability.StageRender, err, time.Since(renderStart))
	if err != nil {
		return nil, err
	}
	fields := logger.DurationFields("render", time.Since(renderStart))
	fields[logger.FieldPath] = doc.File
	log.Info("pdf rendered", fields)

	if uerr := g.upload(ctx, doc); uerr != nil {
		doc.UploadErr = uerr
		fields := logger.ErrorFields("upload", uerr)
		fields["object"] = doc.Object
		log.Warn("failed to upload pdf", fields)
	} else {
		doc.Uploaded = true
		log.Info("pdf uploaded", logger.Fields("object", doc.Object))
	}
	g.metrics.RecordDocument(ctx, doc.Uploaded)
	return doc, nil
}

func (g *Generator) writePDF(ctx context.Context, html, file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return fmt.Errorf("document: create output directory: %w", err)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("document: create %s: %w", file, err)
	}
	if err := g.renderer.Render(ctx, html, f); err != nil {
		f.Close()
		os.Remove(file)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(file)
		return fmt.Errorf("document: close %s: %w", file, err)
	}
	return nil
}

func (g *Generator) upload(ctx context.Context, doc *Document) (err error) {
	if g.uploader == nil {
		return fmt.Errorf("document: no storage configured")
	}
	start := time.Now()
	defer func() { g.metrics.RecordStage(ctx, observability.StageStore, err, time.Since(start)) }()

	if g.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.uploadTimeout)
		defer cancel()
	}

	f, err := os.Open(doc.File)
	if err != nil {
		return fmt.Errorf("document: open %s: %w", doc.File, err)
	}
	defer f.Close()
	return g.uploader.Upload(ctx, doc.Object, f)
}
