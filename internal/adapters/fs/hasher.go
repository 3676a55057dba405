package fs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lunaria/internal/core/domain"
	"go.trai.ch/lunaria/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints the configuration that affects tracking results.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes the XXHash of the tracking rules, locales and file sets of cfg.
// Order-insensitive collections are sorted so equivalent configurations hash equally.
func (h *Hasher) Fingerprint(cfg *domain.Config) string {
	hasher := xxhash.New()

	// Tracking rules
	keywords := slices.Clone(cfg.Tracking.IgnoredKeywords)
	slices.Sort(keywords)
	writeList(hasher, keywords)

	// Locales
	writeLocale(hasher, cfg.SourceLocale)
	_, _ = hasher.Write([]byte{0})
	locales := slices.Clone(cfg.Locales)
	slices.SortFunc(locales, func(a, b domain.Locale) int {
		return strings.Compare(a.Lang, b.Lang)
	})
	for _, locale := range locales {
		writeLocale(hasher, locale)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	// File sets
	sets := make([]string, 0, len(cfg.Files))
	for _, set := range cfg.Files {
		sets = append(sets, encodeFileSet(set))
	}
	slices.Sort(sets)
	writeList(hasher, sets)

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func writeList(hasher *xxhash.Digest, items []string) {
	for _, item := range items {
		_, _ = hasher.WriteString(item)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

func writeLocale(hasher *xxhash.Digest, locale domain.Locale) {
	_, _ = hasher.WriteString(locale.Lang)
	_, _ = hasher.Write([]byte{'='})
	_, _ = hasher.WriteString(locale.Label)
	_, _ = hasher.Write([]byte{0})
}

func encodeFileSet(set domain.FileSet) string {
	include := slices.Clone(set.Include)
	exclude := slices.Clone(set.Exclude)
	slices.Sort(include)
	slices.Sort(exclude)
	return strings.Join(include, "\x1f") + "\x1e" + strings.Join(exclude, "\x1f")
}
