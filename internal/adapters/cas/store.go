// Package cas implements durable storage for resolution checkpoints.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

const tempFilePrefix = "lunaria-tmp-"

// Store implements ports.CacheStore with one JSON file per cache domain.
type Store struct {
	dir string
}

// cacheFile is the on-disk layout of a cache domain.
type cacheFile struct {
	Fingerprint string            `json:"fingerprint"`
	Entries     map[string]string `json:"entries"`
}

// NewStore creates a Store keeping its files under dir.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Read returns the entries of cacheDomain when they were written under fingerprint.
// A missing, corrupt or stale file reads as empty.
func (s *Store) Read(cacheDomain, fingerprint string) (map[string]string, error) {
	entries := make(map[string]string)

	//nolint:gosec // Path is built from the configured cache dir and a fixed domain name
	data, err := os.ReadFile(s.filename(cacheDomain))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "domain", cacheDomain)
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return entries, nil
	}
	if file.Fingerprint != fingerprint {
		return entries, nil
	}

	for path, hash := range file.Entries {
		entries[path] = hash
	}
	return entries, nil
}

// Write atomically replaces the file of cacheDomain.
func (s *Store) Write(cacheDomain, fingerprint string, entries map[string]string) error {
	if entries == nil {
		entries = map[string]string{}
	}
	data, err := json.MarshalIndent(cacheFile{Fingerprint: fingerprint, Entries: entries}, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrCacheMarshalFailed, err.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "dir", s.dir)
	}

	if err := writeFileAtomic(s.filename(cacheDomain), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "domain", cacheDomain)
	}
	return nil
}

// Clean removes every cache file.
func (s *Store) Clean() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "dir", s.dir)
	}
	return nil
}

func (s *Store) filename(cacheDomain string) string {
	return filepath.Join(s.dir, cacheDomain+".json")
}

// writeFileAtomic writes data to a temp file in the target directory and renames it into place.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort cleanup, fails once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
