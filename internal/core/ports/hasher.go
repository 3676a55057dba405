package ports

import "go.trai.ch/lunaria/internal/core/domain"

// Hasher defines the interface for computing configuration fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable hash of the parts of cfg that affect tracking.
	Fingerprint(cfg *domain.Config) string
}
