package domain

// DefaultIgnoredKeywords are the keywords applied when the configuration does not set any.
var DefaultIgnoredKeywords = []string{
	"lunaria-ignore",
	"typo",
	"en-only",
	"broken link",
	"i18nReady",
	"i18nIgnore",
}

// TrackingRules configure which commits count as meaningful changes.
type TrackingRules struct {
	// IgnoredKeywords are case-insensitive literal or regex fragments.
	// A commit whose subject matches any of them is never tracked.
	IgnoredKeywords []string `json:"ignored_keywords" yaml:"ignoredKeywords"`
}
