package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mediarepo/admin-api/domain"
)

// ProfileStore implements cache.ProfileStore backed by Redis, for
// deployments running more than one API instance.
type ProfileStore struct {
	client *redis.Client
	prefix string
}

// NewProfileStore creates a new [ProfileStore] instance.
func NewProfileStore(client *redis.Client, prefix string) *ProfileStore {
	return &ProfileStore{client: client, prefix: prefix}
}

func (s *ProfileStore) key(userID string) string {
	return fmt.Sprintf("%s:profile:%s", s.prefix, userID)
}

// Get retrieves a cached profile. Redis errors are reported as a miss;
// enrichment is best-effort either way.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*domain.Profile, bool) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// Set stores a profile with the given TTL.
func (s *ProfileStore) Set(ctx context.Context, userID string, profile *domain.Profile, ttl time.Duration) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set profile in redis: %w", err)
	}
	return nil
}

// Delete removes a cached profile.
func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
