package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider talks to an LLM proxy that exposes POST /complete.
type HTTPProvider struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPProvider creates a provider for the proxy at baseURL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	if baseURL == "" {
		baseURL = "http://localhost:8088"
	}
	return &HTTPProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type completeRequest struct {
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type completeResponse struct {
	OK     bool   `json:"ok"`
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

func (p *HTTPProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	b, err := json.Marshal(completeRequest{
		System:      req.System,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/complete", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("content proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("content proxy returned status %d: %s", resp.StatusCode, string(body))
	}

	var out completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("content proxy decode: %w", err)
	}
	if !out.OK {
		return "", fmt.Errorf("content proxy error: %s", out.Error)
	}
	return out.Answer, nil
}
