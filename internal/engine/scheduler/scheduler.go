// Package scheduler runs per-file resolutions with bounded parallelism.
package scheduler

import (
	"context"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ResolveFunc resolves a single file.
type ResolveFunc func(ctx context.Context, path string) (domain.ResolutionResult, error)

// Scheduler fans file resolutions out to a bounded set of workers.
type Scheduler struct{}

// NewScheduler creates a new Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Run resolves every path with at most ClampParallelism(parallelism) concurrent calls to fn.
// The first failure cancels the remaining work and is returned.
// Results are returned in the order of paths.
func (s *Scheduler) Run(
	ctx context.Context,
	paths []string,
	parallelism int,
	fn ResolveFunc,
) ([]domain.ResolutionResult, error) {
	results := make([]domain.ResolutionResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(domain.ClampParallelism(parallelism))

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "file resolution failed"), "path", path)
			}
			// Each worker owns its own slot.
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
