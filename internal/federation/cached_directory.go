package federation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/cache"
	"github.com/mediarepo/admin-api/domain"
)

const profileCacheTTL = 10 * time.Minute

// CachedDirectory wraps a Directory with a profile cache. Cache write
// failures are logged and ignored.
type CachedDirectory struct {
	inner Directory
	store cache.ProfileStore
}

// NewCachedDirectory decorates dir with the given store.
func NewCachedDirectory(dir Directory, store cache.ProfileStore) *CachedDirectory {
	return &CachedDirectory{inner: dir, store: store}
}

// Lookup implements Directory.
func (d *CachedDirectory) Lookup(ctx context.Context, userID string) (*domain.Profile, error) {
	if profile, ok := d.store.Get(ctx, userID); ok {
		return profile, nil
	}

	profile, err := d.inner.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := d.store.Set(ctx, userID, profile, profileCacheTTL); err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("failed to cache directory profile")
	}
	return profile, nil
}
