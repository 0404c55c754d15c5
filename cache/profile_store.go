// Package cache provides short-lived caching of identity-directory
// profiles so repeated enrichment lookups do not hammer the external
// provider.
package cache

import (
	"context"
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// ProfileStore caches directory profiles keyed by user id.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*domain.Profile, bool)
	Set(ctx context.Context, userID string, profile *domain.Profile, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
}
