package store

import (
	"context"
	"sync"
	"time"

	"github.com/unimatch/backend/internal/domain"
)

// memoryItem is a single serialized value with an optional expiration
type memoryItem struct {
	Value      []byte
	Expiration time.Time // zero means never
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.Expiration.IsZero() && now.After(i.Expiration)
}

// MemoryStore is a thread-safe in-process ProfileStore with TTL support.
// Values are held as JSON so callers never share memory with the store.
type MemoryStore struct {
	data  map[string]memoryItem
	mutex sync.RWMutex
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a memory store. A ttl of zero keeps entries until deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]memoryItem),
		ttl:  ttl,
		done: make(chan struct{}),
	}

	if ttl > 0 {
		go s.cleanupExpired(10 * time.Minute)
	}

	return s
}

// GetProfile returns the stored profile, or ErrProfileNotFound if absent or expired
func (s *MemoryStore) GetProfile(ctx context.Context, clientID string) (*domain.StudentProfile, error) {
	data, err := s.get(profileKey(clientID))
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return decodeProfile(data)
}

// SaveProfile stores the profile, restarting its ttl
func (s *MemoryStore) SaveProfile(ctx context.Context, clientID string, profile *domain.StudentProfile) error {
	data, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	s.set(profileKey(clientID), data)
	return nil
}

// DeleteProfile removes the profile. Deleting a missing key is not an error.
func (s *MemoryStore) DeleteProfile(ctx context.Context, clientID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data, profileKey(clientID))
	return nil
}

// GetLikes returns the liked IDs. A client with no likes gets an empty slice.
func (s *MemoryStore) GetLikes(ctx context.Context, clientID string) ([]string, error) {
	data, err := s.get(likesKey(clientID))
	if err != nil {
		return []string{}, nil
	}
	return decodeLikes(data)
}

// SaveLikes replaces the liked IDs
func (s *MemoryStore) SaveLikes(ctx context.Context, clientID string, ids []string) error {
	data, err := encodeLikes(ids)
	if err != nil {
		return err
	}
	s.set(likesKey(clientID), data)
	return nil
}

// Close stops the expiry sweep. The store stays readable afterwards.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Size returns the number of stored entries, expired or not
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) get(key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, ok := s.data[key]
	if !ok || item.expired(time.Now()) {
		return nil, domain.ErrCacheMiss
	}
	return item.Value, nil
}

func (s *MemoryStore) set(key string, value []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item := memoryItem{Value: value}
	if s.ttl > 0 {
		item.Expiration = time.Now().Add(s.ttl)
	}
	s.data[key] = item
}

// cleanupExpired removes expired entries periodically until Close
func (s *MemoryStore) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.removeExpired(time.Now())
		}
	}
}

func (s *MemoryStore) removeExpired(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for key, item := range s.data {
		if item.expired(now) {
			delete(s.data, key)
		}
	}
}
