package model

import (
	"context"
	"time"
)

// Summary holds the current listing counts for one run. It is what the
// chat-channel notifiers announce; the per-job digest bodies are rendered
// separately from the new-jobs set.
type Summary struct {
	Date    time.Time
	SiteURL string
	Counts  map[Category]int
}

// Total returns the combined count across categories.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Notifier announces a run summary to a delivery channel.
type Notifier interface {
	Notify(ctx context.Context, s Summary) error
}
