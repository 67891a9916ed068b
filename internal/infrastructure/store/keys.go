// Package store holds the ProfileStore backends: an in-process map with
// TTL, Redis, and an on-disk Pebble database.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/unimatch/backend/internal/domain"
)

const (
	profileKeyPrefix = "unimatch:profile:"
	likesKeyPrefix   = "unimatch:likes:"
)

func profileKey(clientID string) string { return profileKeyPrefix + clientID }

func likesKey(clientID string) string { return likesKeyPrefix + clientID }

func encodeProfile(p *domain.StudentProfile) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil profile", domain.ErrInvalidRequest)
	}
	return json.Marshal(p)
}

func decodeProfile(data []byte) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode stored profile: %w", err)
	}
	return &p, nil
}

func encodeLikes(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

func decodeLikes(data []byte) ([]string, error) {
	ids := []string{}
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode stored likes: %w", err)
	}
	return ids, nil
}
