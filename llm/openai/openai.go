// Package openai implements llm.Provider with the official OpenAI Go SDK.
// Any OpenAI-compatible endpoint works; the default is Groq.
package openai

import (
	"context"
	"fmt"
	"net/http"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	apperrors "github.com/kbukum/visitnote/errors"
	"github.com/kbukum/visitnote/llm"
)

// Name is the registry name of this backend.
const Name = "openai"

// Provider sends chat completions.
type Provider struct {
	client oai.Client
	cfg    llm.Config
}

var _ llm.Provider = (*Provider)(nil)

// New creates a Provider. The SDK's own retries are disabled.
func New(cfg llm.Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}))
	}

	return &Provider{client: oai.NewClient(opts...), cfg: cfg}, nil
}

// Factory is the registry factory for this backend.
func Factory(cfg llm.Config) (llm.Provider, error) {
	return New(cfg)
}

func (p *Provider) Name() string { return Name }

func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// Execute returns the first choice's content.
func (p *Provider) Execute(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.buildParams(req))
	if err != nil {
		return llm.CompletionResponse{}, apperrors.ExternalServiceError("llm", err)
	}
	if len(resp.Choices) == 0 {
		return llm.CompletionResponse{}, apperrors.ExternalServiceError("llm", fmt.Errorf("empty choices in response"))
	}

	return llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: llm.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (p *Provider) buildParams(req llm.CompletionRequest) oai.ChatCompletionNewParams {
	var messages []oai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, oai.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			messages = append(messages, oai.SystemMessage(m.Content))
		case "assistant":
			messages = append(messages, oai.AssistantMessage(m.Content))
		default:
			messages = append(messages, oai.UserMessage(m.Content))
		}
	}

	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}
	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}

	temp := req.Temperature
	if temp == 0 {
		temp = p.cfg.Temperature
	}
	if temp != 0 {
		params.Temperature = param.NewOpt(temp)
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.cfg.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(maxTokens))
	}
	return params
}
