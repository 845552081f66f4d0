package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/visitnote/logger"
	"github.com/kbukum/visitnote/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

func TestRecoveryReturns500(t *testing.T) {
	e := gin.New()
	e.Use(middleware.Recovery(logger.Nop()))
	e.GET("/boom", func(*gin.Context) { panic("test panic") })

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error.Code != "INTERNAL_ERROR" || body.Error.Message != "An unexpected error occurred." {
		t.Errorf("unexpected error body: %s", rr.Body.String())
	}
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	var seen string
	e := gin.New()
	e.Use(middleware.RequestID())
	e.GET("/", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rr := serve(e, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	id := rr.Header().Get(middleware.HeaderRequestID)
	if id == "" {
		t.Fatal("expected X-Request-Id in response headers")
	}
	if seen != id {
		t.Errorf("expected context id %q, got %q", id, seen)
	}
}

func TestRequestIDPreservesExisting(t *testing.T) {
	e := gin.New()
	e.Use(middleware.RequestID())
	e.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	rr := serve(e, req)
	if got := rr.Header().Get(middleware.HeaderRequestID); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

func TestCORSAllowAll(t *testing.T) {
	e := gin.New()
	e.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	}))
	e.POST("/process_transcription", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/process_transcription", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := serve(e, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echo, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("unexpected methods header %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	e := gin.New()
	e.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: []string{"https://app.example"}}))
	e.POST("/process_transcription", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/process_transcription", http.NoBody)
	req.Header.Set("Origin", "https://other.example")
	rr := serve(e, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS header for a disallowed origin")
	}
}

func TestBodySizeLimit(t *testing.T) {
	e := gin.New()
	e.Use(middleware.BodySizeLimit(8))
	e.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	rr := serve(e, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 under the limit, got %d", rr.Code)
	}
	rr = serve(e, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely too large")))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 over the limit, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "PAYLOAD_TOO_LARGE") {
		t.Errorf("expected structured error body, got %s", rr.Body.String())
	}
}

func TestRequestLoggerWritesStatus(t *testing.T) {
	var buf strings.Builder
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	e := gin.New()
	e.Use(middleware.RequestLogger(log))
	e.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	e.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(e, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if buf.Len() != 0 {
		t.Errorf("expected health checks to be skipped, got %s", buf.String())
	}

	serve(e, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["status"] != float64(404) {
		t.Errorf("unexpected log entry %v", entry)
	}
}
