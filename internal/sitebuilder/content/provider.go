package content

import (
	"context"
	"errors"
)

// ErrNoProvider is returned by NoopProvider.
var ErrNoProvider = errors.New("no content provider configured")

// CompletionRequest is one prompt sent to a generative text provider.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider is an external generative text service.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f ProviderFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// NoopProvider fails every call so the orchestrator always uses fallback content.
type NoopProvider struct{}

func (NoopProvider) Complete(context.Context, CompletionRequest) (string, error) {
	return "", ErrNoProvider
}
