package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/unimatch/backend/internal/domain"
)

// PebbleStore keeps profiles and likes in an on-disk Pebble database so they
// survive restarts. Writes are synced. Entries never expire.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebbleStore opens (or creates) the database in dir
func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: open pebble at %s: %v", domain.ErrStoreUnavailable, dir, err)
	}
	return &PebbleStore{db: db}, nil
}

// GetProfile reads the profile
func (s *PebbleStore) GetProfile(ctx context.Context, clientID string) (*domain.StudentProfile, error) {
	data, err := s.get(profileKey(clientID))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeProfile(data)
}

// SaveProfile writes the profile with a synced commit
func (s *PebbleStore) SaveProfile(ctx context.Context, clientID string, profile *domain.StudentProfile) error {
	data, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	return s.set(profileKey(clientID), data)
}

// DeleteProfile removes the profile
func (s *PebbleStore) DeleteProfile(ctx context.Context, clientID string) error {
	if err := s.db.Delete([]byte(profileKey(clientID)), pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetLikes reads the liked IDs
func (s *PebbleStore) GetLikes(ctx context.Context, clientID string) ([]string, error) {
	data, err := s.get(likesKey(clientID))
	if errors.Is(err, pebble.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeLikes(data)
}

// SaveLikes writes the liked IDs
func (s *PebbleStore) SaveLikes(ctx context.Context, clientID string, ids []string) error {
	data, err := encodeLikes(ids)
	if err != nil {
		return err
	}
	return s.set(likesKey(clientID), data)
}

// Close flushes and closes the database
func (s *PebbleStore) Close() error {
	return s.db.Close()
}

// get copies the value out, since pebble's slice is only valid until the closer runs
func (s *PebbleStore) get(key string) ([]byte, error) {
	val, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *PebbleStore) set(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
