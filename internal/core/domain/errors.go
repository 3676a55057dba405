package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrNoHistory is returned when a file has no commits (uncommitted or outside version control).
	ErrNoHistory = zerr.New("file has no commit history")

	// ErrBackendUnavailable is returned when the version-control query itself fails.
	ErrBackendUnavailable = zerr.New("version control backend unavailable")

	// ErrUnknownRevision is returned when a checkpoint hash is not known to the repository.
	ErrUnknownRevision = zerr.New("unknown revision")

	// ErrMalformedLog is returned when the backend output cannot be parsed into commit records.
	ErrMalformedLog = zerr.New("malformed commit log output")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("could not find lunaria configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the configuration is structurally unusable.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInvalidPattern is returned when a file set contains a malformed glob.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrFileListingFailed is returned when the tracked files cannot be enumerated.
	ErrFileListingFailed = zerr.New("failed to list tracked files")

	// ErrCacheReadFailed is returned when the cache file exists but cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read change cache")

	// ErrCacheWriteFailed is returned when the cache cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write change cache")

	// ErrCacheMarshalFailed is returned when cache entries cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal change cache")

	// ErrTrackingFailed is returned when resolving one of the tracked files fails.
	ErrTrackingFailed = zerr.New("tracking failed")
)

// ExitError reports an external command that ran but exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
}
