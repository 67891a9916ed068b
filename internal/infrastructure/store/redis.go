package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unimatch/backend/internal/domain"
)

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 keeps keys forever
}

// RedisStore keeps profiles and likes as JSON strings in Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping failed: %v", domain.ErrStoreUnavailable, err)
	}

	return NewRedisStoreWithClient(client, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// GetProfile fetches and decodes the profile. redis.Nil maps to ErrProfileNotFound.
func (s *RedisStore) GetProfile(ctx context.Context, clientID string) (*domain.StudentProfile, error) {
	data, err := s.client.Get(ctx, profileKey(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return decodeProfile(data)
}

// SaveProfile encodes the profile as JSON and sets it with the store ttl
func (s *RedisStore) SaveProfile(ctx context.Context, clientID string, profile *domain.StudentProfile) error {
	data, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, profileKey(clientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteProfile deletes the profile key
func (s *RedisStore) DeleteProfile(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, profileKey(clientID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetLikes fetches the liked IDs
func (s *RedisStore) GetLikes(ctx context.Context, clientID string) ([]string, error) {
	data, err := s.client.Get(ctx, likesKey(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return decodeLikes(data)
}

// SaveLikes overwrites the liked IDs
func (s *RedisStore) SaveLikes(ctx context.Context, clientID string, ids []string) error {
	data, err := encodeLikes(ids)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, likesKey(clientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
