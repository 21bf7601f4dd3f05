package usajobs

import (
	"context"
	"log/slog"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// NullClient is the capability variant selected at startup when credentials
// are missing. It returns zero records, which the pipeline treats as normal
// input, so validate and dry runs stay usable before a .env is configured.
type NullClient struct {
	logger *slog.Logger
}

var _ Searcher = (*NullClient)(nil)

func NewNullClient(logger *slog.Logger) *NullClient {
	return &NullClient{logger: logger}
}

func (c *NullClient) Search(_ context.Context, q model.Query) ([]SearchResultItem, error) {
	c.logger.Warn("usajobs credentials not configured, returning zero records", "category", q.Category)
	return nil, nil
}
