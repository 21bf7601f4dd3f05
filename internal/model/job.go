package model

import "time"

// Job is the canonical representation of one USAJOBS posting. Field order
// matches the published JSON schema consumed by the static site; optional
// salary fields are omitted rather than null-filled to keep output
// diff-friendly.
type Job struct {
	JobID        string    `json:"job_id"`
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	Locations    []string  `json:"locations"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	PostedAt     time.Time `json:"posted_at"`
	Salary       string    `json:"salary,omitempty"`
	Grade        string    `json:"grade,omitempty"`
	Remote       *bool     `json:"remote,omitempty"`
}

// Query describes one category search against the USAJOBS Search API.
type Query struct {
	Category Category
	Keywords []string
	Days     int // lookback window in days
	Limit    int // max results across all pages
}
