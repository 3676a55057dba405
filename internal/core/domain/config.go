package domain

import (
	"os"
	"runtime"
)

const (
	// ConfigFileName is the default YAML configuration file name.
	ConfigFileName = "lunaria.yml"
	// ConfigFileNameJSON is the JSON configuration file name, read by the same decoder.
	ConfigFileNameJSON = "lunaria.json"
	// DefaultCacheDir is the cache directory used when the configuration does not set one.
	DefaultCacheDir = ".lunaria/cache"
	// CacheDomainGit namespaces the checkpoints produced by the git history walker.
	CacheDomainGit = "git"

	// DirPerm is the permission used for directories created by lunaria.
	DirPerm os.FileMode = 0o750
	// FilePerm is the permission used for files written by lunaria.
	FilePerm os.FileMode = 0o644
)

const (
	minParallelism = 2
	maxParallelism = 32
)

// Locale is a language the project is translated into.
type Locale struct {
	Lang  string `json:"lang" yaml:"lang"`
	Label string `json:"label" yaml:"label"`
}

// FileSet selects tracked files by glob.
// A file is tracked when it matches any Include pattern and no Exclude pattern.
type FileSet struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude"`
}

// Config is the configuration the tracking core receives from the loader.
type Config struct {
	// Root is the absolute repository directory the file sets are relative to.
	Root string
	// CacheDir is the absolute directory checkpoints are persisted in.
	CacheDir     string
	SourceLocale Locale
	Locales      []Locale
	Files        []FileSet
	Tracking     TrackingRules
}

// ClampParallelism bounds the number of concurrent history queries.
// Non-positive values default to the host core count.
func ClampParallelism(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return min(max(n, minParallelism), maxParallelism)
}
