package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/ratelimit"
)

// DefaultBaseURL is the production Search API endpoint.
const DefaultBaseURL = "https://data.usajobs.gov/api/search"

// pageSize is the API's maximum ResultsPerPage.
const pageSize = 50

// ClientConfig wires a Client. Email and APIKey are required for real calls;
// BaseURL, HTTPClient and Limiter default sensibly when zero.
type ClientConfig struct {
	Email      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
	Logger     *slog.Logger
}

// Client fetches raw search results from the USAJOBS Search API. Auth is two
// headers: User-Agent carries the registered email, Authorization-Key the key.
type Client struct {
	email      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
}

var _ Searcher = (*Client)(nil)

// NewClient creates a Search API client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		email:      cfg.Email,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		limiter:    cfg.Limiter,
		logger:     cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Search pages through results for the query until the limit is covered or a
// page comes back empty. Every page is requested at the full page size and the
// overshoot is trimmed locally: Page offsets are multiples of ResultsPerPage,
// so shrinking the final request would re-address earlier results. The shared
// limiter gates every page request, so two categories searching concurrently
// stay inside the API budget together.
func (c *Client) Search(ctx context.Context, q model.Query) ([]SearchResultItem, error) {
	keyword := BuildKeyword(q.Keywords)
	limit := q.Limit
	if limit < 1 {
		limit = 1
	}

	var items []SearchResultItem
	for page := 1; len(items) < limit; page++ {
		pageItems, err := c.searchPage(ctx, keyword, q.Days, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("usajobs search %s page %d: %w", q.Category, page, err)
		}
		if len(pageItems) == 0 {
			break
		}
		items = append(items, pageItems...)
	}

	if len(items) > limit {
		items = items[:limit]
	}
	c.logger.Debug("usajobs search complete", "category", q.Category, "keyword", keyword, "fetched", len(items))
	return items, nil
}

func (c *Client) searchPage(ctx context.Context, keyword string, days, page, size int) ([]SearchResultItem, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("Keyword", keyword)
	params.Set("DatePosted", strconv.Itoa(NormalizeDays(days)))
	params.Set("ResultsPerPage", strconv.Itoa(size))
	params.Set("Page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.email)
	req.Header.Set("Authorization-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body.SearchResult.SearchResultItems, nil
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
