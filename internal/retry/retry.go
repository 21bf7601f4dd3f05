package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

// Searcher is a decorator that retries transient upstream failures with
// exponential backoff and jitter before delegating to the wrapped Searcher.
// Retries exhaust at the fetch boundary; prior persisted state is never
// touched by a failed fetch.
type Searcher struct {
	inner      usajobs.Searcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

var _ usajobs.Searcher = (*Searcher)(nil)

// NewSearcher wraps a Searcher with retry logic. maxRetries is the number of
// additional attempts after the first failure; baseDelay is the delay before
// the first retry, doubled on each subsequent one.
func NewSearcher(inner usajobs.Searcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Searcher {
	return &Searcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Search attempts the query, retrying on transient errors.
func (s *Searcher) Search(ctx context.Context, q model.Query) ([]usajobs.SearchResultItem, error) {
	items, err := s.inner.Search(ctx, q)
	if err == nil {
		return items, nil
	}
	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt, lastErr)

		s.logger.Warn("retrying after transient error",
			"category", q.Category,
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		items, err = s.inner.Search(ctx, q)
		if err == nil {
			return items, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (s *Searcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := s.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation — never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 429 {
			return true
		}
		if httpErr.StatusCode >= 500 {
			return true
		}
		// Other 4xx — the request itself is wrong, retrying won't help.
		return false
	}

	// Non-HTTP errors (network, DNS, etc.) — retryable.
	return true
}
