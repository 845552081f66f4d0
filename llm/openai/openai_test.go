package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/llm"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "mixtral-8x7b-32768",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Here you go: {\"diagnosis\": \"flu\"}"}
  }],
  "usage": {"prompt_tokens": 120, "completion_tokens": 12, "total_tokens": 132}
}`

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestProvider(t *testing.T, url string) *Provider {
	t.Helper()
	cfg := llm.Config{APIKey: "gsk-test", BaseURL: url}
	cfg.ApplyDefaults()
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExecuteSendsSingleUserMessage(t *testing.T) {
	var got capturedRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/openai/v1/")
	content, err := llm.Complete(context.Background(), p, "extract this")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if path != "/openai/v1/chat/completions" {
		t.Errorf("unexpected path %s", path)
	}
	if auth != "Bearer gsk-test" {
		t.Errorf("unexpected auth header %q", auth)
	}
	if got.Model != "mixtral-8x7b-32768" {
		t.Errorf("unexpected model %q", got.Model)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "extract this" {
		t.Errorf("expected one user message, got %+v", got.Messages)
	}
	if content != `Here you go: {"diagnosis": "flu"}` {
		t.Errorf("unexpected content %q", content)
	}
}

func TestExecuteReportsUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	resp, err := newTestProvider(t, srv.URL+"/").Execute(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.Usage.TotalTokens != 132 || resp.Model != "mixtral-8x7b-32768" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestExecuteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"model decommissioned","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(t, srv.URL+"/").Execute(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestExecuteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestProvider(t, srv.URL+"/").Execute(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestBuildParamsOverrides(t *testing.T) {
	p := newTestProvider(t, "http://localhost/")
	params := p.buildParams(llm.CompletionRequest{
		Model:        "llama3-70b-8192",
		SystemPrompt: "be terse",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
		Temperature:  0.2,
		MaxTokens:    256,
	})
	if string(params.Model) != "llama3-70b-8192" {
		t.Errorf("unexpected model %q", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Errorf("expected system and user messages, got %d", len(params.Messages))
	}
	if params.Temperature.Value != 0.2 || params.MaxCompletionTokens.Value != 256 {
		t.Errorf("unexpected sampling params %+v %+v", params.Temperature, params.MaxCompletionTokens)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(llm.Config{Model: "m"}); err == nil {
		t.Error("expected missing key error")
	}
}
