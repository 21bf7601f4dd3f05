package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter is the process-wide token bucket gating requests to the USAJOBS
// API. Both category fetchers share one instance, so a parallel run stays
// inside the same request budget as a sequential one.
type Limiter struct {
	lim *rate.Limiter
}

// PerMinute creates a limiter allowing n requests per minute with a burst of
// one. n <= 0 disables limiting.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return &Limiter{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{lim: rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)}
}

// Wait blocks until a request is allowed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.lim.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}
