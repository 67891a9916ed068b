package domain

import "errors"

var (
	// ErrProfileNotFound is returned when no profile is stored for a client
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileIncomplete is returned when matches are requested for a profile
	// that misses required fields
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrInstitutionNotFound is returned when an institution ID is not in the catalog
	ErrInstitutionNotFound = errors.New("institution not found")

	// ErrInvalidClientID is returned for empty or malformed client identifiers
	ErrInvalidClientID = errors.New("invalid client id")

	// ErrInvalidSwipe is returned when a swipe direction is not like or skip
	ErrInvalidSwipe = errors.New("invalid swipe direction")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogInvalid is returned when a catalog document fails validation
	ErrCatalogInvalid = errors.New("invalid catalog")

	// ErrCatalogNotFound is returned when a remote catalog does not exist
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrCatalogFetch is returned when a remote catalog request fails
	ErrCatalogFetch = errors.New("catalog request failed")

	// ErrStoreUnavailable is returned when the profile store cannot be reached
	ErrStoreUnavailable = errors.New("profile store unavailable")

	// ErrCacheMiss is returned by the memory store for absent or expired keys
	ErrCacheMiss = errors.New("cache miss")
)
