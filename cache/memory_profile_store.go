package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/mediarepo/admin-api/domain"
)

// MemoryProfileStore implements ProfileStore using ttlcache.
type MemoryProfileStore struct {
	cache *ttlcache.Cache[string, *domain.Profile]
}

// NewMemoryProfileStore creates an in-memory profile store with
// automatic expiry cleanup.
//
//nolint:ireturn
func NewMemoryProfileStore(defaultTTL time.Duration) ProfileStore {
	c := ttlcache.New(
		ttlcache.WithTTL[string, *domain.Profile](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, *domain.Profile](),
	)

	go c.Start()

	return &MemoryProfileStore{cache: c}
}

// Get implements ProfileStore.Get.
func (s *MemoryProfileStore) Get(_ context.Context, userID string) (*domain.Profile, bool) {
	item := s.cache.Get(userID)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set implements ProfileStore.Set.
func (s *MemoryProfileStore) Set(_ context.Context, userID string, profile *domain.Profile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	s.cache.Set(userID, profile, ttl)
	return nil
}

// Delete implements ProfileStore.Delete.
func (s *MemoryProfileStore) Delete(_ context.Context, userID string) error {
	s.cache.Delete(userID)
	return nil
}
