package store

import (
	"context"
	"fmt"
	"time"

	"github.com/unimatch/backend/internal/domain"
)

// Options selects and configures a backend for New
type Options struct {
	Type          string // "memory", "redis" or "pebble"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PebbleDir     string
	TTL           time.Duration
}

// New builds the ProfileStore named by opts.Type
func New(ctx context.Context, opts Options) (domain.ProfileStore, error) {
	switch opts.Type {
	case "", "memory":
		return NewMemoryStore(opts.TTL), nil
	case "redis":
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			TTL:      opts.TTL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "pebble":
		s, err := OpenPebbleStore(opts.PebbleDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type %q", opts.Type)
	}
}
