package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedSearcher returns the scripted errors in order, then succeeds.
type scriptedSearcher struct {
	errs  []error
	items []usajobs.SearchResultItem
	calls int
}

func (s *scriptedSearcher) Search(ctx context.Context, q model.Query) ([]usajobs.SearchResultItem, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return s.items, nil
}

func serverErr() error {
	return &model.HTTPError{StatusCode: http.StatusInternalServerError, Err: errors.New("upstream 500")}
}

func TestSearch_SucceedsAfterTransientErrors(t *testing.T) {
	inner := &scriptedSearcher{
		errs:  []error{serverErr(), serverErr()},
		items: []usajobs.SearchResultItem{{MatchedObjectID: "1"}},
	}
	s := NewSearcher(inner, 2, time.Millisecond, discardLogger())

	items, err := s.Search(context.Background(), model.Query{Category: model.CategoryAI})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, inner.calls)
}

func TestSearch_ExhaustsRetries(t *testing.T) {
	inner := &scriptedSearcher{errs: []error{serverErr(), serverErr(), serverErr(), serverErr()}}
	s := NewSearcher(inner, 2, time.Millisecond, discardLogger())

	_, err := s.Search(context.Background(), model.Query{Category: model.CategoryAI})
	require.Error(t, err)
	require.Equal(t, 3, inner.calls)

	var httpErr *model.HTTPError
	require.ErrorAs(t, err, &httpErr)
}

func TestSearch_DoesNotRetryClientErrors(t *testing.T) {
	inner := &scriptedSearcher{errs: []error{
		&model.HTTPError{StatusCode: http.StatusUnauthorized, Err: errors.New("bad key")},
	}}
	s := NewSearcher(inner, 3, time.Millisecond, discardLogger())

	_, err := s.Search(context.Background(), model.Query{Category: model.CategoryAI})
	require.Error(t, err)
	require.Equal(t, 1, inner.calls)
}

func TestSearch_DoesNotRetryCancelledContext(t *testing.T) {
	inner := &scriptedSearcher{errs: []error{
		fmt429(),
		fmt429(),
	}}
	s := NewSearcher(inner, 3, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, model.Query{Category: model.CategoryAI})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, inner.calls)
}

func fmt429() error {
	return &model.HTTPError{StatusCode: http.StatusTooManyRequests, Err: errors.New("rate limited")}
}

func TestBackoffDelay_RetryAfterWins(t *testing.T) {
	s := NewSearcher(nil, 2, time.Second, discardLogger())

	err := &model.HTTPError{
		StatusCode: http.StatusTooManyRequests,
		RetryAfter: 42 * time.Second,
		Err:        errors.New("rate limited"),
	}
	require.Equal(t, 42*time.Second, s.backoffDelay(1, err))
}

func TestBackoffDelay_GrowsWithJitterBounds(t *testing.T) {
	s := NewSearcher(nil, 3, time.Second, discardLogger())

	for attempt, base := range map[int]time.Duration{1: time.Second, 2: 2 * time.Second, 3: 4 * time.Second} {
		d := s.backoffDelay(attempt, serverErr())
		require.GreaterOrEqual(t, d, time.Duration(float64(base)*0.7), "attempt %d", attempt)
		require.LessOrEqual(t, d, time.Duration(float64(base)*1.3), "attempt %d", attempt)
	}
}

func TestIsRetryable(t *testing.T) {
	require.True(t, isRetryable(fmt429()))
	require.True(t, isRetryable(serverErr()))
	require.True(t, isRetryable(errors.New("connection refused")))
	require.False(t, isRetryable(nil))
	require.False(t, isRetryable(context.Canceled))
	require.False(t, isRetryable(&model.HTTPError{StatusCode: http.StatusNotFound, Err: errors.New("not found")}))
}
