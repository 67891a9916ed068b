package domain

import "context"

// ProfileStore persists a student profile and the set of liked institution
// IDs, keyed by a stable client identifier.
type ProfileStore interface {
	GetProfile(ctx context.Context, clientID string) (*StudentProfile, error)
	SaveProfile(ctx context.Context, clientID string, profile *StudentProfile) error
	DeleteProfile(ctx context.Context, clientID string) error

	// GetLikes returns liked IDs in the order they were liked. A client with
	// no likes yields an empty slice and no error.
	GetLikes(ctx context.Context, clientID string) ([]string, error)
	SaveLikes(ctx context.Context, clientID string, ids []string) error

	Close() error
}

// CatalogRepository provides the read-only institution catalog
type CatalogRepository interface {
	All(ctx context.Context) ([]Institution, error)
	ByID(ctx context.Context, id string) (*Institution, error)
}
