package ports

import (
	"context"

	"go.trai.ch/lunaria/internal/core/domain"
)

// HistoryWalker queries version-control history for single files.
//
//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type HistoryWalker interface {
	// Log returns the commits of the repository at root touching path, newest first.
	// A non-empty since restricts the result to commits strictly after that commit.
	Log(ctx context.Context, root, path, since string) ([]domain.CommitRecord, error)

	// Commit returns the record of a single commit.
	// It returns domain.ErrUnknownRevision when the hash is not part of the repository.
	Commit(ctx context.Context, root, hash string) (domain.CommitRecord, error)
}
