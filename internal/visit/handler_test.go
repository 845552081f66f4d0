package visit

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/internal/document"
	"github.com/kbukum/visitnote/internal/extraction"
	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTranscriber struct {
	text     string
	err      error
	panics   bool
	seenPath string
	existed  bool
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (string, error) {
	f.seenPath = path
	_, err := os.Stat(path)
	f.existed = err == nil
	if f.panics {
		panic("decoder crashed")
	}
	return f.text, f.err
}

type fakeExtractor struct {
	raw    string
	err    error
	called bool
}

func (f *fakeExtractor) Extract(context.Context, string) (string, error) {
	f.called = true
	return f.raw, f.err
}

type fakeGenerator struct {
	doc    *document.Document
	err    error
	result *extraction.Result
}

func (f *fakeGenerator) Generate(_ context.Context, jsonPath string) (*document.Document, error) {
	r, err := extraction.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	f.result = r
	return f.doc, f.err
}

type pipeline struct {
	transcriber *fakeTranscriber
	extractor   *fakeExtractor
	generator   *fakeGenerator
	tempDir     string
	router      *gin.Engine
}

func newPipeline(t *testing.T, mws ...gin.HandlerFunc) *pipeline {
	t.Helper()
	p := &pipeline{
		transcriber: &fakeTranscriber{text: "Doctor: you have the flu."},
		extractor:   &fakeExtractor{raw: `{"diagnosis":"flu","summary":"rest advised","medicines":["paracetamol"],"exercises":[],"tests":[]}`},
		generator: &fakeGenerator{doc: &document.Document{
			PatientNumber: 1234567890,
			File:          "output/1234567890.pdf",
			Object:        "pdfs/1234567890.pdf",
			Uploaded:      true,
		}},
		tempDir: t.TempDir(),
	}
	h := NewHandler(Config{TempDir: p.tempDir}, p.transcriber, p.extractor, p.generator, nil, logger.Nop())
	p.router = gin.New()
	p.router.Use(mws...)
	h.Register(p.router)
	return p
}

func (p *pipeline) post(t *testing.T, field string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "visit.webm")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("fake audio bytes"))
	} else {
		mw.WriteField("note", "no audio here")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/process_transcription", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)
	return w
}

func (p *pipeline) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(p.tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected temp dir to be empty, found %v", names)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return m
}

func TestMissingAudio(t *testing.T) {
	p := newPipeline(t)
	w := p.post(t, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "No audio file provided" {
		t.Errorf("unexpected error %v", got)
	}
	if p.transcriber.seenPath != "" {
		t.Error("transcriber should not be called")
	}
}

func TestSuccess(t *testing.T) {
	p := newPipeline(t)
	w := p.post(t, "audio")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["status"] != StatusGenerated {
		t.Errorf("unexpected status %v", body["status"])
	}
	if body["uploaded"] != true || body["object"] != "pdfs/1234567890.pdf" {
		t.Errorf("unexpected body %v", body)
	}
	if body["patient_number"] != float64(1234567890) {
		t.Errorf("unexpected patient number %v", body["patient_number"])
	}
	if _, ok := body["warning"]; ok {
		t.Error("unexpected warning")
	}

	if !p.transcriber.existed {
		t.Error("audio file should exist while transcribing")
	}
	if filepath.Ext(p.transcriber.seenPath) != ".webm" {
		t.Errorf("expected upload extension to be kept, got %q", p.transcriber.seenPath)
	}
	if p.generator.result == nil || p.generator.result.Diagnosis != "flu" || p.generator.result.Prescription() != "paracetamol" {
		t.Errorf("generator got unexpected extraction %+v", p.generator.result)
	}
	p.assertTempDirEmpty(t)
}

func TestUploadFailureIsWarning(t *testing.T) {
	p := newPipeline(t)
	p.generator.doc.Uploaded = false
	p.generator.doc.UploadErr = stderrors.New("permission denied")

	w := p.post(t, "audio")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["uploaded"] != false {
		t.Errorf("expected uploaded=false, got %v", body["uploaded"])
	}
	warning, _ := body["warning"].(string)
	if !strings.Contains(warning, "permission denied") {
		t.Errorf("unexpected warning %q", warning)
	}
}

func TestEmptyTranscript(t *testing.T) {
	p := newPipeline(t)
	p.transcriber.text = ""

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != "Transcription failed or empty" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Errorf("expected plain text, got %q", w.Header().Get("Content-Type"))
	}
	if p.extractor.called {
		t.Error("extractor should not be called")
	}
	p.assertTempDirEmpty(t)
}

func TestTranscriptionError(t *testing.T) {
	p := newPipeline(t)
	p.transcriber.err = stderrors.New("deepgram down")

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError || w.Body.String() != "Transcription failed or empty" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
	p.assertTempDirEmpty(t)
}

func TestNoJSON(t *testing.T) {
	p := newPipeline(t)
	p.extractor.raw = ""
	p.extractor.err = errors.NoJSON()

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != "No valid JSON found in the response." {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	p.assertTempDirEmpty(t)
}

func TestGenerationError(t *testing.T) {
	p := newPipeline(t)
	p.generator.err = stderrors.New("wkhtmltopdf not found")

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Error occurred: wkhtmltopdf not found" {
		t.Errorf("unexpected error %v", got)
	}
	p.assertTempDirEmpty(t)
}

func TestLLMErrorIsGenerationError(t *testing.T) {
	p := newPipeline(t)
	p.extractor.err = stderrors.New("rate limited")

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got, _ := decode(t, w)["error"].(string); !strings.HasPrefix(got, "Error occurred: ") {
		t.Errorf("unexpected error %q", got)
	}
}

func TestKeepExtractions(t *testing.T) {
	p := newPipeline(t)
	h := NewHandler(Config{TempDir: p.tempDir, KeepExtractions: true}, p.transcriber, p.extractor, p.generator, nil, logger.Nop())
	p.router = gin.New()
	h.Register(p.router)

	if w := p.post(t, "audio"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	matches, _ := filepath.Glob(filepath.Join(p.tempDir, "extraction-*.json"))
	if len(matches) != 1 {
		t.Errorf("expected one kept extraction file, got %v", matches)
	}
	audio, _ := filepath.Glob(filepath.Join(p.tempDir, "audio-*"))
	if len(audio) != 0 {
		t.Errorf("audio must never be kept, got %v", audio)
	}
}

func TestChunkedUploadOverBodyLimit(t *testing.T) {
	p := newPipeline(t, middleware.BodySizeLimit(64))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", "visit.wav")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(bytes.Repeat([]byte{0x52}, 4096))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/process_transcription", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = -1
	w := httptest.NewRecorder()
	p.router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), string(errors.ErrCodePayloadTooLarge)) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if p.transcriber.seenPath != "" {
		t.Error("transcriber should not be called")
	}
}

func TestTranscriberPanicRemovesAudio(t *testing.T) {
	p := newPipeline(t, middleware.Recovery(logger.Nop()))
	p.transcriber.panics = true

	w := p.post(t, "audio")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !p.transcriber.existed {
		t.Error("audio file should exist while transcribing")
	}
	p.assertTempDirEmpty(t)
}
