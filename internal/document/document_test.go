package document

import (
	"context"
	stderrors "errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/visitnote/internal/extraction"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/storage/memory"
)

var fixedNow = time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)

func TestNewRecordRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		rec := NewRecord(&extraction.Result{}, fixedNow, rng)

		days := rec.FollowUp.Sub(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)).Hours() / 24
		if days < 1 || days >= 8 {
			t.Fatalf("follow-up %v not within 1-7 days", rec.FollowUp)
		}
		if h := rec.FollowUp.Hour(); h < 8 || h > 17 {
			t.Fatalf("follow-up hour %d outside 8-17", h)
		}
		if rec.PatientNumber < MinPatientNumber || rec.PatientNumber > MaxPatientNumber {
			t.Fatalf("patient number %d out of range", rec.PatientNumber)
		}
		if len(strconv.FormatInt(rec.PatientNumber, 10)) != 10 {
			t.Fatalf("patient number %d is not 10 digits", rec.PatientNumber)
		}
	}
}

func TestNewRecordFormats(t *testing.T) {
	rec := NewRecord(nil, fixedNow, rand.New(rand.NewPCG(7, 7)))
	if rec.Date != "Mar 09, 2026" {
		t.Errorf("unexpected date %q", rec.Date)
	}
	if rec.Time != "10:00 AM" {
		t.Errorf("unexpected time %q", rec.Time)
	}
	if rec.FollowUpDate != rec.FollowUp.Format("Jan 02, 2006") || rec.FollowUpTime != rec.FollowUp.Format("03:04 PM") {
		t.Errorf("unexpected follow-up formatting %q %q", rec.FollowUpDate, rec.FollowUpTime)
	}
	if rec.Result == nil {
		t.Error("expected an empty result for nil input")
	}
}

func sampleRecord(t *testing.T) *Record {
	t.Helper()
	r, err := extraction.Parse([]byte(`{"diagnosis":"flu","summary":"rest advised","medicines":["paracetamol"],"exercises":[],"tests":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	return &Record{
		Result:        r,
		Date:          "Mar 09, 2026",
		Time:          "10:00 AM",
		FollowUpDate:  "Mar 12, 2026",
		FollowUpTime:  "09:15 AM",
		PatientNumber: 1234567890,
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleRecord(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Your Conslt Prescription",
		"<div>CONSLT.AI</div>",
		"<div>DATE: Mar 09, 2026</div>",
		"<td>10:00 AM</td>",
		"<td>John Doe</td>",
		"<td>48 years</td>",
		"<td>Stanford Health</td>",
		"<td>181 cm</td>",
		"<td>+1(408) 000-000</td>",
		"<td>74 Kg</td>",
		`<div class="field-box">flu</div>`,
		`<div class="field-box">rest advised</div>`,
		`<div class="field-box">paracetamol</div>`,
		"Signature: ______________________",
		"Follow Up Date: Mar 12, 2026 | Time: 09:15 AM",
		"Patient Number: 1234567890",
		"background-color: #C44D35;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderHTMLEscapesValues(t *testing.T) {
	rec := sampleRecord(t)
	rec.Result.Diagnosis = "<script>alert(1)</script>"
	html, err := RenderHTML(rec)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("expected extracted values to be escaped")
	}
}

func writeExtraction(t *testing.T, dir, raw string) string {
	t.Helper()
	p := filepath.Join(dir, "extraction.json")
	if err := extraction.WriteFile(p, raw); err != nil {
		t.Fatal(err)
	}
	return p
}

func fakeRenderer(captured *string) Renderer {
	return RendererFunc(func(_ context.Context, html string, w io.Writer) error {
		if captured != nil {
			*captured = html
		}
		_, err := io.WriteString(w, "%PDF-1.4 fake")
		return err
	})
}

func newTestGenerator(t *testing.T, r Renderer, u Uploader) (*Generator, string) {
	t.Helper()
	out := t.TempDir()
	g := NewGenerator(Config{OutputDir: out}, r, u,
		WithClock(func() time.Time { return fixedNow }),
		WithRand(rand.New(rand.NewPCG(3, 4))),
		WithLogger(logger.Nop()),
		WithUploadTimeout(time.Second),
	)
	return g, out
}

func TestGenerateUploadsPDF(t *testing.T) {
	store := memory.New()
	var html string
	g, out := newTestGenerator(t, fakeRenderer(&html), store)
	jsonPath := writeExtraction(t, t.TempDir(), `{"diagnosis":"flu","summary":"rest advised","medicines":["paracetamol"],"exercises":[],"tests":[]}`)

	doc, err := g.Generate(context.Background(), jsonPath)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	name := strconv.FormatInt(doc.PatientNumber, 10) + ".pdf"
	if doc.File != filepath.Join(out, name) {
		t.Errorf("unexpected file %q", doc.File)
	}
	if doc.Object != "pdfs/"+name {
		t.Errorf("unexpected object %q", doc.Object)
	}
	if !doc.Uploaded || doc.UploadErr != nil {
		t.Errorf("expected upload, got %v %v", doc.Uploaded, doc.UploadErr)
	}
	if data, ok := store.Get(doc.Object); !ok || string(data) != "%PDF-1.4 fake" {
		t.Errorf("unexpected uploaded object %q", data)
	}
	if _, err := os.Stat(doc.File); err != nil {
		t.Errorf("expected local copy to remain: %v", err)
	}
	if !strings.Contains(html, `<div class="field-box">paracetamol</div>`) {
		t.Error("expected prescription in rendered html")
	}
}

func TestGenerateUploadFailureIsWarning(t *testing.T) {
	store := memory.New()
	store.UploadErr = stderrors.New("bucket not found")
	g, _ := newTestGenerator(t, fakeRenderer(nil), store)
	jsonPath := writeExtraction(t, t.TempDir(), `{"diagnosis":"flu"}`)

	doc, err := g.Generate(context.Background(), jsonPath)
	if err != nil {
		t.Fatalf("upload failure must not fail generation: %v", err)
	}
	if doc.Uploaded {
		t.Error("expected Uploaded=false")
	}
	if doc.UploadErr == nil || !strings.Contains(doc.UploadErr.Error(), "bucket not found") {
		t.Errorf("unexpected upload error %v", doc.UploadErr)
	}
	if _, err := os.Stat(doc.File); err != nil {
		t.Errorf("expected local pdf: %v", err)
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Errorf("expected nothing stored, got %v", keys)
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	boom := stderrors.New("wkhtmltopdf crashed")
	r := RendererFunc(func(context.Context, string, io.Writer) error { return boom })
	g, out := newTestGenerator(t, r, memory.New())
	jsonPath := writeExtraction(t, t.TempDir(), `{"diagnosis":"flu"}`)

	if _, err := g.Generate(context.Background(), jsonPath); !stderrors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("expected no partial pdf, found %d entries", len(entries))
	}
}

func TestGenerateInvalidJSON(t *testing.T) {
	g, _ := newTestGenerator(t, fakeRenderer(nil), memory.New())
	jsonPath := writeExtraction(t, t.TempDir(), `{"diagnosis": flu`)
	if _, err := g.Generate(context.Background(), jsonPath); err == nil {
		t.Error("expected decode error")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ObjectPrefix: "/reports/"}
	cfg.ApplyDefaults()
	if cfg.OutputDir != "./output" || cfg.ObjectPrefix != "reports" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Renderer.PageSize != "A4" || cfg.Renderer.DPI != 96 {
		t.Errorf("unexpected renderer defaults %+v", cfg.Renderer)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
