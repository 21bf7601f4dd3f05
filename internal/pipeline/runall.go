package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// RunAll runs the pipeline for each category concurrently. The categories
// share no mutable state beyond the fetch rate limiter, so the only ordering
// guarantee is within a category. Errors are collected per category, never
// propagated across them.
func (r *Runner) RunAll(ctx context.Context, categories []model.Category) []Outcome {
	outcomes := make([]Outcome, len(categories))

	var g errgroup.Group
	for i, c := range categories {
		g.Go(func() error {
			res, err := r.Run(ctx, c)
			outcomes[i] = Outcome{Result: res, Err: err}
			if err != nil {
				r.logger.Error("category run failed", "category", c, "error", err)
			}
			return nil
		})
	}
	g.Wait()

	return outcomes
}

// Failed reports whether any category ended in error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}
