package domain

import (
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DirectiveKind identifies how a commit directive overrides default tracking.
type DirectiveKind string

const (
	// DirectiveTrack limits a commit to the listed paths.
	DirectiveTrack DirectiveKind = "track"
	// DirectiveIgnore excludes the listed paths from a commit.
	DirectiveIgnore DirectiveKind = "ignore"
)

const (
	trackDirectiveKeyword  = "lunaria-track"
	ignoreDirectiveKeyword = "lunaria-ignore"
	directiveTargetSep     = ";"
)

// directiveRe only ever yields the first directive in a body.
var directiveRe = regexp.MustCompile(`@(` + trackDirectiveKeyword + `|` + ignoreDirectiveKeyword + `):([^\r\n]*)`)

// Directive is an inline marker in a commit body overriding tracking for specific paths.
type Directive struct {
	Kind    DirectiveKind
	Targets []string
}

// ParseDirective extracts the first directive from a commit body.
// A directive without usable targets is treated as absent.
func ParseDirective(body string) (Directive, bool) {
	match := directiveRe.FindStringSubmatch(body)
	if match == nil {
		return Directive{}, false
	}

	kind := DirectiveTrack
	if match[1] == ignoreDirectiveKeyword {
		kind = DirectiveIgnore
	}

	var targets []string
	for _, target := range strings.Split(match[2], directiveTargetSep) {
		if target = strings.TrimSpace(target); target != "" {
			targets = append(targets, NormalizePath(target))
		}
	}
	if len(targets) == 0 {
		return Directive{}, false
	}

	return Directive{Kind: kind, Targets: targets}, true
}

// Matches reports whether filePath matches at least one of the directive targets.
func (d Directive) Matches(filePath string) bool {
	return MatchAny(d.Targets, filePath)
}

// Allows reports whether the directive lets a commit count as tracked for filePath.
func (d Directive) Allows(filePath string) bool {
	switch d.Kind {
	case DirectiveTrack:
		return d.Matches(filePath)
	case DirectiveIgnore:
		return !d.Matches(filePath)
	default:
		return true
	}
}

// MatchAny reports whether name matches any of the glob patterns.
// Malformed patterns never match.
func MatchAny(patterns []string, name string) bool {
	name = NormalizePath(name)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(NormalizePath(pattern), name); err == nil && ok {
			return true
		}
	}
	return false
}

// NormalizePath converts p to a clean slash-separated relative form.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "./")
}
