package usajobs

import (
	"context"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Searcher is the fetch capability at the pipeline boundary: one category
// query in, raw search-result records out. Client implements it against the
// real API; NullClient is the unconfigured variant; the retry decorator
// wraps either.
type Searcher interface {
	Search(ctx context.Context, q model.Query) ([]SearchResultItem, error)
}

// searchResponse is the top-level Search API envelope.
type searchResponse struct {
	SearchResult struct {
		SearchResultCount int                `json:"SearchResultCount"`
		SearchResultItems []SearchResultItem `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

// SearchResultItem is one raw record as returned by the Search API.
type SearchResultItem struct {
	MatchedObjectID string             `json:"MatchedObjectId"`
	Descriptor      PositionDescriptor `json:"MatchedObjectDescriptor"`
}

// PositionDescriptor carries the posting fields the normalizer consumes.
// Only the fields we map are declared; the API returns many more.
type PositionDescriptor struct {
	PositionTitle        string             `json:"PositionTitle"`
	OrganizationName     string             `json:"OrganizationName"`
	DepartmentName       string             `json:"DepartmentName"`
	PositionLocation     []PositionLocation `json:"PositionLocation"`
	ApplyURI             []string           `json:"ApplyURI"`
	PositionURI          string             `json:"PositionURI"`
	PositionSummary      string             `json:"PositionSummary"`
	PublicationStartDate string             `json:"PublicationStartDate"`
	PositionStartDate    string             `json:"PositionStartDate"`
	UserArea             UserArea           `json:"UserArea"`
}

type PositionLocation struct {
	LocationName string `json:"LocationName"`
}

type UserArea struct {
	Details UserAreaDetails `json:"Details"`
}

type UserAreaDetails struct {
	JobSummary string `json:"JobSummary"`
	LowGrade   string `json:"LowGrade"`
	HighGrade  string `json:"HighGrade"`
}
