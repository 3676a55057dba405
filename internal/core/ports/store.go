package ports

// CacheStore persists checkpoint maps keyed by cache domain and configuration fingerprint.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Read returns the entries stored for domain.
	// It returns an empty map when nothing is stored or the fingerprint differs.
	Read(domain, fingerprint string) (map[string]string, error)

	// Write replaces the entries stored for domain.
	Write(domain, fingerprint string, entries map[string]string) error

	// Clean removes everything the store persisted.
	Clean() error
}

// CacheStoreFactory opens the CacheStore rooted at a cache directory.
type CacheStoreFactory func(dir string) CacheStore
