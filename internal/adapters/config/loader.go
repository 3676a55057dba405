// Package config provides the configuration loader for lunaria.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML or JSON file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Lunariafile represents the structure of the lunaria.yml configuration file.
type Lunariafile struct {
	Root         string       `yaml:"root"`
	CacheDir     string       `yaml:"cacheDir"`
	SourceLocale LocaleDTO    `yaml:"sourceLocale"`
	Locales      []LocaleDTO  `yaml:"locales"`
	Files        []FileSetDTO `yaml:"files"`
	Tracking     TrackingDTO  `yaml:"tracking"`
}

// LocaleDTO represents a locale definition in the configuration.
type LocaleDTO struct {
	Lang  string `yaml:"lang"`
	Label string `yaml:"label"`
}

// FileSetDTO represents a group of tracked files in the configuration.
type FileSetDTO struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// TrackingDTO represents the tracking rules in the configuration.
// A nil IgnoredKeywords means the key was absent and the defaults apply.
type TrackingDTO struct {
	IgnoredKeywords *[]string `yaml:"ignoredKeywords"`
}

// Load reads the configuration at path, relative to cwd unless absolute.
// An empty path searches cwd and its parents for a configuration file.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath, err := l.locate(cwd, path)
	if err != nil {
		return nil, err
	}

	var file Lunariafile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := toDomain(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if l.Logger != nil {
		l.Logger.Debug("configuration loaded", "path", configPath, "root", cfg.Root)
	}
	return cfg, nil
}

func (l *Loader) locate(cwd, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return filepath.Clean(path), nil
	}
	return findConfiguration(cwd)
}

// findConfiguration walks from cwd up to the file system root.
// The nearest directory holding a configuration file wins; YAML is preferred over JSON.
func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		for _, name := range []string{domain.ConfigFileName, domain.ConfigFileNameJSON} {
			candidate := filepath.Join(currentDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func toDomain(configPath string, file *Lunariafile) (*domain.Config, error) {
	if err := validate(file); err != nil {
		return nil, err
	}

	root := resolveRoot(configPath, file.Root)

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = domain.DefaultCacheDir
	}
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(root, cacheDir)
	}

	keywords := domain.DefaultIgnoredKeywords
	if file.Tracking.IgnoredKeywords != nil {
		keywords = *file.Tracking.IgnoredKeywords
	}

	cfg := &domain.Config{
		Root:         root,
		CacheDir:     filepath.Clean(cacheDir),
		SourceLocale: domain.Locale(file.SourceLocale),
		Tracking:     domain.TrackingRules{IgnoredKeywords: append([]string(nil), keywords...)},
	}
	for _, locale := range file.Locales {
		cfg.Locales = append(cfg.Locales, domain.Locale(locale))
	}
	for _, set := range file.Files {
		cfg.Files = append(cfg.Files, domain.FileSet(set))
	}
	return cfg, nil
}

func validate(file *Lunariafile) error {
	if strings.TrimSpace(file.SourceLocale.Lang) == "" {
		return zerr.With(domain.ErrInvalidConfig, "field", "sourceLocale.lang")
	}

	seen := map[string]bool{file.SourceLocale.Lang: true}
	for _, locale := range file.Locales {
		if strings.TrimSpace(locale.Lang) == "" {
			return zerr.With(domain.ErrInvalidConfig, "field", "locales.lang")
		}
		if seen[locale.Lang] {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "locales"), "duplicate_locale", locale.Lang)
		}
		seen[locale.Lang] = true
	}

	if len(file.Files) == 0 {
		return zerr.With(domain.ErrInvalidConfig, "field", "files")
	}
	for _, set := range file.Files {
		if len(set.Include) == 0 {
			return zerr.With(domain.ErrInvalidConfig, "field", "files.include")
		}
	}
	return nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// JSON documents are accepted since YAML is a superset of JSON.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
	}

	return nil
}
