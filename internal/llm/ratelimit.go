package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that bounds outbound calls with a token
// bucket shared by all callers.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with a limiter allowing rps calls per
// second with the given burst. A non-positive rps returns p unchanged.
func WithRateLimit(p Provider, rps float64, burst int) Provider {
	if rps <= 0 {
		return p
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (l *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return l.inner.Generate(ctx, req)
}

func (l *RateLimitProvider) ModelID() string {
	return l.inner.ModelID()
}
