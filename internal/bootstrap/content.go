package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
)

// NewContentProvider builds the configured generative provider, rate limited.
func NewContentProvider(ctx context.Context, cfg config.ContentConfig) (content.Provider, error) {
	var (
		p   content.Provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderHTTP:
		p = content.NewHTTPProvider(cfg.BaseURL)
	case config.ProviderGemini:
		p, err = content.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		p, err = content.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIURL)
	case config.ProviderNone, "":
		return content.NoopProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown content provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return content.RateLimited(p, rate.Limit(cfg.RatePerSec), cfg.Burst), nil
}
