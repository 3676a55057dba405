package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Resolver selects the latest tracked commit of a file.
// It is safe for concurrent use once built.
type Resolver struct {
	keywords []*regexp.Regexp
}

// NewResolver compiles the keyword patterns of rules.
// Keywords that are not valid regular expressions are matched literally.
func NewResolver(rules TrackingRules) *Resolver {
	r := &Resolver{}
	for _, keyword := range rules.IgnoredKeywords {
		if strings.TrimSpace(keyword) == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + keyword)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))
		}
		r.keywords = append(r.keywords, re)
	}
	return r
}

// Ignored reports whether the commit subject matches an ignored keyword.
// The body is left to directives, which may themselves contain keywords such as lunaria-ignore.
func (r *Resolver) Ignored(commit CommitRecord) bool {
	for _, re := range r.keywords {
		if re.MatchString(commit.Subject) {
			return true
		}
	}
	return false
}

// Qualifies reports whether commit counts as a tracked change of filePath.
// The keyword veto is applied before any directive is considered.
func (r *Resolver) Qualifies(filePath string, commit CommitRecord) bool {
	if r.Ignored(commit) {
		return false
	}
	directive, ok := ParseDirective(commit.Body)
	if !ok {
		return true
	}
	return directive.Allows(filePath)
}

// Tracked returns the first commit of the newest-first sequence that qualifies for filePath.
func (r *Resolver) Tracked(filePath string, commits []CommitRecord) (CommitRecord, bool) {
	for _, commit := range commits {
		if r.Qualifies(filePath, commit) {
			return commit, true
		}
	}
	return CommitRecord{}, false
}

// Resolve builds the resolution result of filePath from its newest-first history.
// When no commit qualifies, the newest commit doubles as the tracked change.
func (r *Resolver) Resolve(filePath string, commits []CommitRecord) (ResolutionResult, error) {
	filePath = NormalizePath(filePath)
	if len(commits) == 0 {
		return ResolutionResult{}, zerr.With(ErrNoHistory, "path", filePath)
	}

	tracked, ok := r.Tracked(filePath, commits)
	if !ok {
		tracked = commits[0]
	}

	return ResolutionResult{
		Path:                filePath,
		LatestChange:        commits[0],
		LatestTrackedChange: tracked,
	}, nil
}
