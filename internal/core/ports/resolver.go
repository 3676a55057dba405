package ports

import "go.trai.ch/lunaria/internal/core/domain"

// FileLister enumerates the files selected by the configured file sets.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type FileLister interface {
	// ListFiles returns slash-separated paths relative to root, sorted.
	ListFiles(root string, sets []domain.FileSet, skip []string) ([]string, error)
}
