package provider

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited throttles calls to an embedder with a token bucket. Ingesting
// a whole exam issues one request per question; the limiter keeps that
// under the provider quota.
type RateLimited struct {
	next    Embedder
	limiter *rate.Limiter
}

// NewRateLimited wraps next. rps <= 0 disables throttling; burst < 1 is
// treated as 1.
func NewRateLimited(next Embedder, rps float64, burst int) *RateLimited {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Embed waits for a token and delegates to the wrapped embedder.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Embed(ctx, text)
}

var _ Embedder = (*RateLimited)(nil)
