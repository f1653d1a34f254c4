package content

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Provider
	limiter *rate.Limiter
}

// RateLimited throttles calls to next. Waiting honours the caller's deadline,
// so a saturated limiter surfaces as an ordinary provider failure.
func RateLimited(next Provider, limit rate.Limit, burst int) Provider {
	if limit <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *rateLimited) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return r.next.Complete(ctx, req)
}
