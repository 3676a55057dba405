package domain

import (
	"strings"
	"time"
)

// CommitRecord is a single commit as reported by the version-control backend.
// Records are produced by the backend and never mutated afterwards.
type CommitRecord struct {
	Hash       string    `json:"hash"`
	AuthorDate time.Time `json:"author_date"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body,omitempty"`
}

// Message returns the full commit message: the subject, a blank line and the body.
func (c CommitRecord) Message() string {
	body := strings.TrimSpace(c.Body)
	if body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + body
}

// IsZero reports whether the record is the zero value.
func (c CommitRecord) IsZero() bool {
	return c.Hash == ""
}

// ResolutionResult is the outcome of resolving a single tracked file.
type ResolutionResult struct {
	// Path is the slash-separated path of the file relative to the repository root.
	Path string `json:"path"`
	// LatestChange is the newest commit touching the file, regardless of tracking rules.
	LatestChange CommitRecord `json:"latest_change"`
	// LatestTrackedChange is the newest commit that counts for localization freshness.
	// It equals LatestChange when no commit qualified.
	LatestTrackedChange CommitRecord `json:"latest_tracked_change"`
}
