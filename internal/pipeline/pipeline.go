// Package pipeline runs the per-category fetch → normalize → dedupe →
// persist sequence and decides whether there is anything to notify about.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdoner02/aicyberjobs/internal/dedupe"
	"github.com/jdoner02/aicyberjobs/internal/model"
	"github.com/jdoner02/aicyberjobs/internal/normalize"
	"github.com/jdoner02/aicyberjobs/internal/usajobs"
)

// StateStore is the slice of the file store the pipeline drives. Write order
// matters: known ids are only persisted after the listing writes succeed, so
// an interrupted run stays replayable.
type StateStore interface {
	WriteLatest(c model.Category, jobs []model.Job) error
	WriteHistory(c model.Category, jobs []model.Job, runDate time.Time) error
	WriteNewJobs(c model.Category, jobs []model.Job) error
	LoadKnownIDs(c model.Category) (ids dedupe.KnownIDSet, found bool, err error)
	WriteKnownIDs(c model.Category, ids dedupe.KnownIDSet) error
}

// State is a category run's terminal state.
type State string

const (
	// StateNotified: new jobs were persisted and digest content should be rendered.
	StateNotified State = "persisted+notified"
	// StateSkipped: the run persisted but found nothing new.
	StateSkipped State = "persisted+skipped"
	// StateDryRun: partitioning ran but all writes were suppressed.
	StateDryRun State = "dry-run"
)

// Result summarizes one category run.
type Result struct {
	Category  model.Category
	State     State
	Fetched   int  // raw records returned upstream
	Malformed int  // records skipped by the normalizer
	Jobs      int  // canonical jobs after normalization
	New       int  // jobs not previously known
	Bootstrap bool // first-ever run, current jobs became the baseline
	NewJobs   []model.Job
}

// Outcome pairs a category's result with its error; one category failing
// never aborts the other.
type Outcome struct {
	Result Result
	Err    error
}

// Options tunes one invocation of the pipeline.
type Options struct {
	Days              int
	Limit             int
	DescriptionMaxLen int
	DryRun            bool
}

// Runner executes the pipeline for one or more categories.
type Runner struct {
	fetcher usajobs.Searcher
	store   StateStore
	opts    Options
	now     func() time.Time
	logger  *slog.Logger
}

// NewRunner wires a pipeline runner with its dependencies.
func NewRunner(fetcher usajobs.Searcher, store StateStore, opts Options, logger *slog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		now:     time.Now,
		logger:  logger,
	}
}

// Run executes one category's pipeline to its terminal state. Failures leave
// all on-disk state as of the previous successful run.
func (r *Runner) Run(ctx context.Context, c model.Category) (Result, error) {
	res := Result{Category: c}

	q := model.Query{
		Category: c,
		Keywords: c.Keywords(),
		Days:     r.opts.Days,
		Limit:    r.opts.Limit,
	}
	items, err := r.fetcher.Search(ctx, q)
	if err != nil {
		return res, fmt.Errorf("fetch %s: %w", c, err)
	}
	res.Fetched = len(items)

	jobs, malformed := normalize.Normalize(items, r.opts.DescriptionMaxLen, r.logger)
	res.Malformed = malformed
	res.Jobs = len(jobs)

	known, found, err := r.store.LoadKnownIDs(c)
	if err != nil {
		return res, fmt.Errorf("load known ids %s: %w", c, err)
	}

	newJobs, _ := dedupe.Partition(jobs, known)
	if !found {
		// First-ever run: the current listing becomes the baseline and
		// nothing counts as new, so a fresh deployment does not flood
		// subscribers with every posting at once.
		res.Bootstrap = true
		newJobs = nil
	}
	res.New = len(newJobs)
	res.NewJobs = newJobs

	if r.opts.DryRun {
		res.State = StateDryRun
		r.logger.Info("dry run, skipping writes",
			"category", c, "jobs", res.Jobs, "new", res.New, "bootstrap", res.Bootstrap)
		return res, nil
	}

	if err := r.store.WriteLatest(c, jobs); err != nil {
		return res, fmt.Errorf("persist %s: %w", c, err)
	}
	if err := r.store.WriteHistory(c, jobs, r.now()); err != nil {
		return res, fmt.Errorf("persist %s: %w", c, err)
	}
	if err := r.store.WriteNewJobs(c, newJobs); err != nil {
		return res, fmt.Errorf("persist %s: %w", c, err)
	}

	for _, j := range jobs {
		known.Add(j.JobID)
	}
	if err := r.store.WriteKnownIDs(c, known); err != nil {
		return res, fmt.Errorf("persist known ids %s: %w", c, err)
	}

	if res.New > 0 {
		res.State = StateNotified
	} else {
		res.State = StateSkipped
	}

	r.logger.Info("category run complete",
		"category", c,
		"state", res.State,
		"fetched", res.Fetched,
		"malformed", res.Malformed,
		"jobs", res.Jobs,
		"new", res.New,
		"known", known.Len(),
		"bootstrap", res.Bootstrap,
	)
	return res, nil
}
