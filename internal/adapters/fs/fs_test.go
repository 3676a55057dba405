package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/lunaria/internal/adapters/fs"
	"go.trai.ch/lunaria/internal/core/domain"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   .lunaria/cache/git.json
	//   ignored/file
	//   src/main.md
	//   README.md
	tmpDir := t.TempDir()
	writeTree(t, tmpDir,
		".git/config",
		".lunaria/cache/git.json",
		"ignored/file",
		"src/main.md",
		"README.md",
	)

	walker := fs.NewWalker()
	files := make(map[string]bool)
	for rel, err := range walker.WalkFiles(tmpDir, []string{"ignored", ".lunaria/cache"}) {
		if err != nil {
			t.Fatal(err)
		}
		files[rel] = true
	}

	if files[".git/config"] {
		t.Error("expected .git/config to be skipped")
	}
	if files["ignored/file"] {
		t.Error("expected ignored/file to be skipped")
	}
	if files[".lunaria/cache/git.json"] {
		t.Error("expected the cache directory to be skipped")
	}
	if !files["src/main.md"] {
		t.Error("expected src/main.md to be found")
	}
	if !files["README.md"] {
		t.Error("expected README.md to be found")
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()
	var gotErr error
	for _, err := range walker.WalkFiles(filepath.Join(t.TempDir(), "missing"), nil) {
		gotErr = err
	}
	if gotErr == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestHasher_Fingerprint(t *testing.T) {
	hasher := fs.NewHasher()
	base := func() *domain.Config {
		return &domain.Config{
			Root:         "/repo",
			CacheDir:     ".lunaria/cache",
			SourceLocale: domain.Locale{Lang: "en", Label: "English"},
			Locales: []domain.Locale{
				{Lang: "es", Label: "Español"},
				{Lang: "fr", Label: "Français"},
			},
			Files: []domain.FileSet{
				{Include: []string{"docs/**/*.md"}, Exclude: []string{"docs/drafts/**"}},
			},
			Tracking: domain.TrackingRules{IgnoredKeywords: []string{"typo", "en-only"}},
		}
	}

	fp := hasher.Fingerprint(base())
	if len(fp) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", fp)
	}

	// 1. Deterministic
	if fp != hasher.Fingerprint(base()) {
		t.Error("expected deterministic fingerprint")
	}

	// 2. Order of keywords and locales does not matter
	reordered := base()
	reordered.Tracking.IgnoredKeywords = []string{"en-only", "typo"}
	reordered.Locales = []domain.Locale{reordered.Locales[1], reordered.Locales[0]}
	if fp != hasher.Fingerprint(reordered) {
		t.Error("expected fingerprint to ignore ordering")
	}

	// 3. Location of the cache does not matter
	moved := base()
	moved.Root = "/elsewhere"
	moved.CacheDir = "tmp/cache"
	if fp != hasher.Fingerprint(moved) {
		t.Error("expected fingerprint to ignore root and cache directory")
	}

	// 4. Tracking-relevant changes do
	changes := map[string]func(*domain.Config){
		"keywords": func(c *domain.Config) { c.Tracking.IgnoredKeywords = []string{"typo"} },
		"source":   func(c *domain.Config) { c.SourceLocale.Lang = "de" },
		"locales":  func(c *domain.Config) { c.Locales = c.Locales[:1] },
		"include":  func(c *domain.Config) { c.Files[0].Include = []string{"src/**/*.md"} },
		"exclude":  func(c *domain.Config) { c.Files[0].Exclude = nil },
	}
	for name, mutate := range changes {
		cfg := base()
		mutate(cfg)
		if fp == hasher.Fingerprint(cfg) {
			t.Errorf("expected fingerprint to change when %s changes", name)
		}
	}
}
