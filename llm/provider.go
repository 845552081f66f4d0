package llm

import (
	"context"

	"github.com/kbukum/visitnote/provider"
)

// Provider is implemented by chat-completion backends.
type Provider interface {
	provider.RequestResponse[CompletionRequest, CompletionResponse]
}

// NewRegistry creates a registry for LLM backends.
func NewRegistry() *provider.Registry[Config, Provider] {
	return provider.NewRegistry[Config, Provider]()
}

// Func adapts fn to Provider.
func Func(name string, fn func(ctx context.Context, req CompletionRequest) (CompletionResponse, error)) Provider {
	return provider.Func(name, fn)
}

// Complete sends prompt as a single user message and returns the text.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], prompt string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
