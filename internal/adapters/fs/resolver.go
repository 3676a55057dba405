package fs

import (
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileLister = (*Resolver)(nil)

// Resolver implements the FileLister interface using doublestar globs.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ListFiles returns the files below root selected by any of the file sets.
// A file is selected by a set when it matches one of its includes and none of its excludes.
func (r *Resolver) ListFiles(root string, sets []domain.FileSet, skip []string) ([]string, error) {
	normalized, err := normalizeSets(sets)
	if err != nil {
		return nil, err
	}

	var files []string
	for rel, err := range r.walker.WalkFiles(root, skip) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrFileListingFailed, err.Error()), "root", root)
		}
		if selected(normalized, rel) {
			files = append(files, rel)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func normalizeSets(sets []domain.FileSet) ([]domain.FileSet, error) {
	out := make([]domain.FileSet, 0, len(sets))
	for _, set := range sets {
		include, err := normalizePatterns(set.Include)
		if err != nil {
			return nil, err
		}
		exclude, err := normalizePatterns(set.Exclude)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.FileSet{Include: include, Exclude: exclude})
	}
	return out, nil
}

func normalizePatterns(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = domain.NormalizePath(pattern)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
		}
		out = append(out, pattern)
	}
	return out, nil
}

func selected(sets []domain.FileSet, rel string) bool {
	for _, set := range sets {
		if domain.MatchAny(set.Include, rel) && !domain.MatchAny(set.Exclude, rel) {
			return true
		}
	}
	return false
}
