// Package tracker resolves the latest tracked change of single files.
package tracker

import (
	"context"
	"errors"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
)

// Checkpoints looks up the tracked commit recorded for a file by a previous run.
type Checkpoints interface {
	Get(path string) (string, bool)
}

// Tracker combines the history walker with the tracked-commit resolver.
type Tracker struct {
	walker    ports.HistoryWalker
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Tracker.
func New(walker ports.HistoryWalker, telemetry ports.Telemetry, logger ports.Logger) *Tracker {
	return &Tracker{
		walker:    walker,
		telemetry: telemetry,
		logger:    logger,
	}
}

// boundedWalker is implemented by history walkers whose process limit can be set per run.
type boundedWalker interface {
	WithParallelism(parallelism int) ports.HistoryWalker
}

// WithParallelism returns a Tracker whose walker runs at most parallelism queries at once.
// A walker without a configurable limit is shared unchanged.
func (t *Tracker) WithParallelism(parallelism int) *Tracker {
	bw, ok := t.walker.(boundedWalker)
	if !ok {
		return t
	}
	clone := *t
	clone.walker = bw.WithParallelism(parallelism)
	return &clone
}

// History returns the newest-first commits of path.
// With a checkpoint only the commits after it are walked and the checkpoint commit itself
// is appended, since it was the tracked change of the previous run. When the checkpoint
// no longer exists the full history is walked. reused reports whether the checkpoint was used.
func (t *Tracker) History(
	ctx context.Context,
	root, path, checkpoint string,
) (commits []domain.CommitRecord, reused bool, err error) {
	if checkpoint != "" {
		commits, err = t.sinceCheckpoint(ctx, root, path, checkpoint)
		switch {
		case err == nil:
			return commits, true, nil
		case errors.Is(err, domain.ErrUnknownRevision):
			t.logger.Warn("checkpoint not found, walking full history", "path", path, "hash", checkpoint)
			if vertex, ok := ports.VertexFromContext(ctx); ok {
				vertex.Log(domain.LogLevelWarn, "checkpoint "+checkpoint+" not found, walking full history")
			}
		default:
			return nil, false, err
		}
	}

	commits, err = t.walker.Log(ctx, root, path, "")
	if err != nil {
		return nil, false, err
	}
	if len(commits) == 0 {
		return nil, false, zerr.With(domain.ErrNoHistory, "path", path)
	}
	return commits, false, nil
}

func (t *Tracker) sinceCheckpoint(ctx context.Context, root, path, checkpoint string) ([]domain.CommitRecord, error) {
	newer, err := t.walker.Log(ctx, root, path, checkpoint)
	if err != nil {
		return nil, err
	}
	anchor, err := t.walker.Commit(ctx, root, checkpoint)
	if err != nil {
		return nil, err
	}
	return append(newer, anchor), nil
}

// Track resolves path under root, reusing the checkpoint recorded for it when available.
// Each call is recorded as a telemetry vertex, marked cached when a checkpoint was reused.
func (t *Tracker) Track(
	ctx context.Context,
	root, path string,
	resolver *domain.Resolver,
	checkpoints Checkpoints,
) (domain.ResolutionResult, error) {
	ctx, vertex := t.telemetry.Record(ctx, "track "+path)

	var checkpoint string
	if checkpoints != nil {
		checkpoint, _ = checkpoints.Get(path)
	}

	commits, reused, err := t.History(ctx, root, path, checkpoint)
	if err != nil {
		vertex.Complete(err)
		return domain.ResolutionResult{}, err
	}
	if reused {
		vertex.Cached()
	}

	res, err := resolver.Resolve(path, commits)
	if err != nil {
		vertex.Complete(err)
		return domain.ResolutionResult{}, err
	}

	vertex.Log(domain.LogLevelInfo, "latest tracked change "+res.LatestTrackedChange.Hash)
	t.logger.Debug("file resolved",
		"path", res.Path,
		"latest_change", res.LatestChange.Hash,
		"latest_tracked_change", res.LatestTrackedChange.Hash,
		"commits", len(commits),
		"checkpoint_reused", reused,
	)
	vertex.Complete(nil)
	return res, nil
}
