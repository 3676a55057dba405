package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lunaria/internal/adapters/config"
	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const minimalConfig = `
sourceLocale:
  lang: en
  label: English
locales:
  - lang: es
    label: Español
files:
  - include: ["docs/**/*.md"]
    exclude: ["docs/drafts/**"]
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, domain.ConfigFileName, minimalConfig)

	cfg, err := config.NewLoader(nil).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(tmpDir), cfg.Root)
	assert.Equal(t, filepath.Join(tmpDir, domain.DefaultCacheDir), cfg.CacheDir)
	assert.Equal(t, domain.Locale{Lang: "en", Label: "English"}, cfg.SourceLocale)
	assert.Equal(t, []domain.Locale{{Lang: "es", Label: "Español"}}, cfg.Locales)
	assert.Equal(t, []domain.FileSet{{
		Include: []string{"docs/**/*.md"},
		Exclude: []string{"docs/drafts/**"},
	}}, cfg.Files)
	assert.Equal(t, domain.DefaultIgnoredKeywords, cfg.Tracking.IgnoredKeywords)
}

func TestLoader_Load_ExplicitFields(t *testing.T) {
	tmpDir := t.TempDir()
	content := minimalConfig + `
root: site
cacheDir: /tmp/lunaria-cache
tracking:
  ignoredKeywords: ["chore"]
`
	writeConfig(t, tmpDir, domain.ConfigFileName, content)

	cfg, err := config.NewLoader(nil).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "site"), cfg.Root)
	assert.Equal(t, "/tmp/lunaria-cache", cfg.CacheDir)
	assert.Equal(t, []string{"chore"}, cfg.Tracking.IgnoredKeywords)
}

func TestLoader_Load_EmptyKeywordsDisableDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, domain.ConfigFileName, minimalConfig+"tracking:\n  ignoredKeywords: []\n")

	cfg, err := config.NewLoader(nil).Load(tmpDir, "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Tracking.IgnoredKeywords)
}

func TestLoader_Load_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, domain.ConfigFileNameJSON, `{
  "sourceLocale": {"lang": "en", "label": "English"},
  "files": [{"include": ["src/content/**/*.mdx"]}]
}`)

	cfg, err := config.NewLoader(nil).Load(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.SourceLocale.Lang)
	assert.Equal(t, []string{"src/content/**/*.mdx"}, cfg.Files[0].Include)
}

func TestLoader_Load_Discovery(t *testing.T) {
	// root/
	//   lunaria.yml
	//   docs/guides/ (cwd for test)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, domain.ConfigFileName, minimalConfig)
	cwd := filepath.Join(tmpDir, "docs", "guides")
	require.NoError(t, os.MkdirAll(cwd, 0o750))

	cfg, err := config.NewLoader(nil).Load(cwd, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(tmpDir), cfg.Root)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "conf"), 0o750))
	writeConfig(t, filepath.Join(tmpDir, "conf"), "custom.yml", minimalConfig+"root: ..\n")

	cfg, err := config.NewLoader(nil).Load(tmpDir, "conf/custom.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(tmpDir), cfg.Root)

	_, err = config.NewLoader(nil).Load(tmpDir, "conf/missing.yml")
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := config.NewLoader(nil).Load(t.TempDir(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "malformed yaml", content: "files: [", want: domain.ErrConfigParseFailed},
		{name: "missing source locale", content: "files:\n  - include: ['a.md']\n", want: domain.ErrInvalidConfig},
		{name: "missing files", content: "sourceLocale: {lang: en}\n", want: domain.ErrInvalidConfig},
		{name: "empty include", content: "sourceLocale: {lang: en}\nfiles:\n  - exclude: ['a.md']\n", want: domain.ErrInvalidConfig},
		{
			name:    "duplicate locale",
			content: "sourceLocale: {lang: en}\nlocales: [{lang: en}]\nfiles:\n  - include: ['a.md']\n",
			want:    domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, domain.ConfigFileName, tt.content)

			_, err := config.NewLoader(nil).Load(tmpDir, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_Load_LogsLoadedPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, domain.ConfigFileName, minimalConfig)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("configuration loaded", "path", path, "root", filepath.Clean(tmpDir))

	_, err := config.NewLoader(logger).Load(tmpDir, "")
	require.NoError(t, err)
}
