// Package fs provides file system adapters for listing tracked files and fingerprinting configuration.
package fs

import (
	"io/fs"
	"iter"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the files below root as slash-separated paths relative to root.
// Version-control metadata directories are always skipped. An entry is also skipped
// when its relative path or base name matches one of the skip patterns.
func (w *Walker) WalkFiles(root string, skip []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}

			if w.shouldSkip(rel, d, skip) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(rel, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, "failed to walk directory"), "root", root))
		}
	}
}

func (w *Walker) shouldSkip(rel string, d fs.DirEntry, skip []string) bool {
	name := d.Name()
	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true
	}

	for _, pattern := range skip {
		if pattern == "" {
			continue
		}
		if pattern == rel || matches(pattern, rel) || matches(pattern, path.Base(rel)) {
			return true
		}
	}
	return false
}

func matches(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
