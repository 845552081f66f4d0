package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "visitnote", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestJSONOutputCarriesServiceAndFields(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.Info("hello", Fields("chars", 12))

	m := decodeLine(t, buf)
	if m["message"] != "hello" {
		t.Errorf("expected message 'hello', got %v", m["message"])
	}
	if m["service"] != "visitnote" {
		t.Errorf("expected service 'visitnote', got %v", m["service"])
	}
	if m["chars"] != float64(12) {
		t.Errorf("expected chars=12, got %v", m["chars"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := jsonLogger(t, "warn")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := jsonLogger(t, "loud")
	l.Debug("dropped")
	l.Info("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("debug should be filtered when level is invalid")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("info should pass when level is invalid")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithComponent("visit").Info("x")
	if m := decodeLine(t, buf); m[FieldComponent] != "visit" {
		t.Errorf("expected component 'visit', got %v", m[FieldComponent])
	}
}

func TestWithContextRequestID(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("x")
	if m := decodeLine(t, buf); m[FieldRequestID] != "req-42" {
		t.Errorf("expected request_id 'req-42', got %v", m[FieldRequestID])
	}
}

func TestWithContextWithoutIDReturnsSameLogger(t *testing.T) {
	l, _ := jsonLogger(t, "info")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when context has no request id")
	}
}

func TestWithError(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, buf); m["error"] != "boom" {
		t.Errorf("expected error 'boom', got %v", m["error"])
	}
}

func TestFieldsSkipsNonStringKeysAndOddTail(t *testing.T) {
	m := Fields("a", 1, 2, "b", "dangling")
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("transcribe", 1500*time.Millisecond)
	if m[FieldOperation] != "transcribe" || m[FieldDuration] != int64(1500) {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stdout" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGetUsesGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: FormatJSON}, "svc", &buf))
	Get("storage").Info("ready")
	if m := decodeLine(t, &buf); m[FieldComponent] != "storage" {
		t.Errorf("expected component 'storage', got %v", m[FieldComponent])
	}
}
