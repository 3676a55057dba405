// Package git implements the history walker on top of the git executable.
package git

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

var _ ports.HistoryWalker = (*Walker)(nil)

const (
	gitExecutable = "git"

	fieldSep  = "\x1f"
	recordSep = "\x1e"
	// logFormat renders hash, ISO author date, subject and body per record.
	logFormat = "--format=%H%x1f%aI%x1f%s%x1f%b%x1e"
)

var hashRe = regexp.MustCompile(`^[0-9a-fA-F]{4,64}$`)

// unknownRevisionMarkers are stderr fragments git prints for revisions it cannot resolve.
var unknownRevisionMarkers = []string{
	"unknown revision",
	"bad revision",
	"bad object",
	"invalid object name",
	"Invalid revision range",
}

// Walker implements ports.HistoryWalker by running git log.
// The number of concurrent git processes is bounded.
type Walker struct {
	runner ports.CommandRunner
	sem    *semaphore.Weighted
}

// NewWalker creates a Walker running at most domain.ClampParallelism(parallelism) git processes at once.
func NewWalker(runner ports.CommandRunner, parallelism int) *Walker {
	return &Walker{
		runner: runner,
		sem:    semaphore.NewWeighted(int64(domain.ClampParallelism(parallelism))),
	}
}

// WithParallelism returns a Walker sharing the runner of w that runs at most
// domain.ClampParallelism(parallelism) git processes at once.
func (w *Walker) WithParallelism(parallelism int) ports.HistoryWalker {
	return NewWalker(w.runner, parallelism)
}

// Log returns the commits touching path, newest first.
// A non-empty since restricts the query to since..HEAD.
func (w *Walker) Log(ctx context.Context, root, path, since string) ([]domain.CommitRecord, error) {
	args := []string{"log", "--no-color", logFormat}
	if since != "" {
		if !hashRe.MatchString(since) {
			return nil, zerr.With(domain.ErrUnknownRevision, "hash", since)
		}
		args = append(args, since+"..HEAD")
	}
	args = append(args, "--", domain.NormalizePath(path))

	out, err := w.run(ctx, root, args...)
	if err != nil {
		var exitErr *domain.ExitError
		if errors.As(err, &exitErr) && strings.Contains(exitErr.Stderr, "does not have any commits yet") {
			return nil, nil
		}
		if since != "" && isUnknownRevision(err) {
			return nil, zerr.With(domain.ErrUnknownRevision, "hash", since)
		}
		return nil, zerr.With(backendError(err), "path", path)
	}

	return parseLog(out)
}

// Commit returns the record of the commit identified by hash.
func (w *Walker) Commit(ctx context.Context, root, hash string) (domain.CommitRecord, error) {
	if !hashRe.MatchString(hash) {
		return domain.CommitRecord{}, zerr.With(domain.ErrUnknownRevision, "hash", hash)
	}

	out, err := w.run(ctx, root, "log", "-1", "--no-color", logFormat, hash, "--")
	if err != nil {
		if isUnknownRevision(err) {
			return domain.CommitRecord{}, zerr.With(domain.ErrUnknownRevision, "hash", hash)
		}
		return domain.CommitRecord{}, zerr.With(backendError(err), "hash", hash)
	}

	commits, err := parseLog(out)
	if err != nil {
		return domain.CommitRecord{}, err
	}
	if len(commits) == 0 {
		return domain.CommitRecord{}, zerr.With(domain.ErrUnknownRevision, "hash", hash)
	}
	return commits[0], nil
}

func (w *Walker) run(ctx context.Context, root string, args ...string) ([]byte, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)

	return w.runner.Run(ctx, root, gitExecutable, args...)
}

func isUnknownRevision(err error) bool {
	var exitErr *domain.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	for _, marker := range unknownRevisionMarkers {
		if strings.Contains(exitErr.Stderr, marker) {
			return true
		}
	}
	return false
}

// backendError classifies a failed git invocation as a backend failure.
func backendError(err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrBackendUnavailable, exitErr.Error()),
			"exit_code", exitErr.ExitCode), "stderr", exitErr.Stderr)
	}
	return zerr.With(zerr.Wrap(domain.ErrBackendUnavailable, err.Error()), "command", gitExecutable)
}

// parseLog decodes records produced with logFormat.
func parseLog(out []byte) ([]domain.CommitRecord, error) {
	var commits []domain.CommitRecord
	for _, record := range strings.Split(string(out), recordSep) {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 4)
		if len(fields) != 4 {
			return nil, zerr.With(domain.ErrMalformedLog, "record", record)
		}

		date, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrMalformedLog, err.Error()), "hash", fields[0])
		}

		commits = append(commits, domain.CommitRecord{
			Hash:       strings.TrimSpace(fields[0]),
			AuthorDate: date,
			Subject:    fields[2],
			Body:       strings.TrimRight(fields[3], "\r\n"),
		})
	}
	return commits, nil
}
