package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lunaria/internal/adapters/telemetry"
	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/lunaria/internal/core/ports/mocks"
	"go.trai.ch/lunaria/internal/engine/tracker"
	"go.uber.org/mock/gomock"
)

type checkpoints map[string]string

func (c checkpoints) Get(path string) (string, bool) {
	h, ok := c[path]
	return h, ok
}

func record(hash, subject string) domain.CommitRecord {
	return domain.CommitRecord{Hash: hash, Subject: subject, AuthorDate: time.Unix(0, 0).UTC()}
}

func defaultResolver() *domain.Resolver {
	return domain.NewResolver(domain.TrackingRules{IgnoredKeywords: domain.DefaultIgnoredKeywords})
}

func TestTracker_History_FullWalk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "").
		Return([]domain.CommitRecord{record("c2", "b"), record("c1", "a")}, nil)

	tr := tracker.New(walker, telemetry.NewNoOp(), mocks.NewMockLogger(ctrl))
	commits, reused, err := tr.History(context.Background(), "/repo", "docs/a.md", "")
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Len(t, commits, 2)
}

func TestTracker_History_Checkpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	gomock.InOrder(
		walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "c2").
			Return([]domain.CommitRecord{record("c4", "typo"), record("c3", "x")}, nil),
		walker.EXPECT().Commit(gomock.Any(), "/repo", "c2").Return(record("c2", "anchor"), nil),
	)

	tr := tracker.New(walker, telemetry.NewNoOp(), mocks.NewMockLogger(ctrl))
	commits, reused, err := tr.History(context.Background(), "/repo", "docs/a.md", "c2")
	require.NoError(t, err)
	assert.True(t, reused)
	require.Len(t, commits, 3)
	assert.Equal(t, "c2", commits[2].Hash)
}

func TestTracker_History_UnknownCheckpointFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "gone").
		Return(nil, domain.ErrUnknownRevision)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "").
		Return([]domain.CommitRecord{record("c1", "a")}, nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("checkpoint not found, walking full history", "path", "docs/a.md", "hash", "gone")

	tr := tracker.New(walker, telemetry.NewNoOp(), logger)
	commits, reused, err := tr.History(context.Background(), "/repo", "docs/a.md", "gone")
	require.NoError(t, err)
	assert.False(t, reused)
	assert.Len(t, commits, 1)
}

func TestTracker_History_UnknownCheckpointLogsToVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "gone").
		Return(nil, domain.ErrUnknownRevision)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "").
		Return([]domain.CommitRecord{record("c1", "a")}, nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any())

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(domain.LogLevelWarn, "checkpoint gone not found, walking full history")

	ctx := ports.ContextWithVertex(context.Background(), vertex)
	tr := tracker.New(walker, telemetry.NewNoOp(), logger)
	_, reused, err := tr.History(ctx, "/repo", "docs/a.md", "gone")
	require.NoError(t, err)
	assert.False(t, reused)
}

func TestTracker_History_NoHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "new.md", "").Return(nil, nil)

	tr := tracker.New(walker, telemetry.NewNoOp(), mocks.NewMockLogger(ctrl))
	_, _, err := tr.History(context.Background(), "/repo", "new.md", "")
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

func TestTracker_History_BackendFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "c1").Return(nil, domain.ErrBackendUnavailable)

	tr := tracker.New(walker, telemetry.NewNoOp(), mocks.NewMockLogger(ctrl))
	_, _, err := tr.History(context.Background(), "/repo", "docs/a.md", "c1")
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestTracker_Track_RecordsCachedVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "c1").
		Return([]domain.CommitRecord{record("c2", "Fix typo")}, nil)
	walker.EXPECT().Commit(gomock.Any(), "/repo", "c1").Return(record("c1", "Add"), nil)

	vertex := mocks.NewMockVertex(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), "track docs/a.md").Return(context.Background(), vertex)
	vertex.EXPECT().Cached()
	vertex.EXPECT().Log(domain.LogLevelInfo, gomock.Any())
	vertex.EXPECT().Complete(nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("file resolved", gomock.Any())

	tr := tracker.New(walker, tel, logger)
	res, err := tr.Track(context.Background(), "/repo", "docs/a.md", defaultResolver(), checkpoints{"docs/a.md": "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c2", res.LatestChange.Hash)
	assert.Equal(t, "c1", res.LatestTrackedChange.Hash)
}

func TestTracker_Track_CompletesVertexWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walker := mocks.NewMockHistoryWalker(ctrl)
	walker.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "").Return(nil, nil)

	vertex := mocks.NewMockVertex(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), "track docs/a.md").Return(context.Background(), vertex)
	vertex.EXPECT().Complete(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrNoHistory))
	})

	tr := tracker.New(walker, tel, mocks.NewMockLogger(ctrl))
	_, err := tr.Track(context.Background(), "/repo", "docs/a.md", defaultResolver(), nil)
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

// limitedWalker records the per-run limit requested by the tracker.
type limitedWalker struct {
	ports.HistoryWalker
	limits []int
}

func (w *limitedWalker) WithParallelism(parallelism int) ports.HistoryWalker {
	w.limits = append(w.limits, parallelism)
	return w.HistoryWalker
}

func TestTracker_WithParallelism_BoundsWalker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHistoryWalker(ctrl)
	inner.EXPECT().Log(gomock.Any(), "/repo", "docs/a.md", "").
		Return([]domain.CommitRecord{record("c1", "a")}, nil)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any())

	walker := &limitedWalker{HistoryWalker: inner}
	tr := tracker.New(walker, telemetry.NewNoOp(), logger)

	bounded := tr.WithParallelism(16)
	assert.Equal(t, []int{16}, walker.limits)
	assert.NotSame(t, tr, bounded)

	res, err := bounded.Track(context.Background(), "/repo", "docs/a.md", defaultResolver(), nil)
	require.NoError(t, err)
	assert.Equal(t, "c1", res.LatestTrackedChange.Hash)
}

func TestTracker_WithParallelism_UnboundedWalker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := tracker.New(mocks.NewMockHistoryWalker(ctrl), telemetry.NewNoOp(), mocks.NewMockLogger(ctrl))
	assert.Same(t, tr, tr.WithParallelism(16))
}
