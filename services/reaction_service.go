package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/dto"
	"github.com/mediarepo/admin-api/internal/federation"
)

const (
	// recentLookback bounds the projection's name sampling: only the
	// newest N reactions on a media item are scanned, never the full
	// history.
	recentLookback = 500
	// maxNamesPerType caps the distinct display names shown per type.
	maxNamesPerType = 10
	// fallbackAuthorName stands in for reactions whose name snapshot
	// is empty.
	fallbackAuthorName = "User"

	directoryLookupTimeout = 2 * time.Second
)

// ReactionService implements the reaction aggregation operations:
// projection, toggle-on with name enrichment, and scoped removal. Every
// operation returns a fresh projection so callers observe a consistent
// post-condition snapshot.
type ReactionService struct {
	types     domain.ReactionTypeRepository
	reactions domain.ReactionRepository
	directory federation.Directory // optional; nil disables enrichment
}

// NewReactionService creates a new ReactionService. directory may be
// nil when no identity directory is configured.
func NewReactionService(
	types domain.ReactionTypeRepository,
	reactions domain.ReactionRepository,
	directory federation.Directory,
) *ReactionService {
	return &ReactionService{
		types:     types,
		reactions: reactions,
		directory: directory,
	}
}

// Projection builds the reaction snapshot for a media item as seen by
// userID: per-type counts, the caller's own type ids, and up to ten
// distinct recent display names per type with an overflow count.
func (s *ReactionService) Projection(ctx context.Context, mediaID, userID string) (*dto.ReactionProjection, error) {
	counts, err := s.reactions.CountsByType(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	mine, err := s.reactions.ListUserTypeIDs(ctx, mediaID, userID)
	if err != nil {
		return nil, err
	}
	if mine == nil {
		mine = []string{}
	}

	recent, err := s.reactions.ListRecent(ctx, mediaID, recentLookback)
	if err != nil {
		return nil, err
	}

	namesByType := make(map[string][]string)
	for _, r := range recent {
		list := namesByType[r.ReactionTypeID]
		if len(list) >= maxNamesPerType {
			continue
		}
		name := fallbackAuthorName
		if r.AuthorName != nil && strings.TrimSpace(*r.AuthorName) != "" {
			name = strings.TrimSpace(*r.AuthorName)
		}
		if containsName(list, name) {
			continue
		}
		namesByType[r.ReactionTypeID] = append(list, name)
	}

	projection := &dto.ReactionProjection{
		Counts:            make([]dto.TypeCount, 0, len(counts)),
		MyReactionTypeIDs: mine,
		TopReactorsByType: make(map[string]dto.TopReactors, len(counts)),
	}
	for _, c := range counts {
		projection.Counts = append(projection.Counts, dto.TypeCount{
			ReactionTypeID: c.ReactionTypeID,
			Count:          c.Count,
		})

		names := namesByType[c.ReactionTypeID]
		if names == nil {
			names = []string{}
		}
		more := c.Count - int64(len(names))
		if more < 0 {
			more = 0
		}
		projection.TopReactorsByType[c.ReactionTypeID] = dto.TopReactors{
			Names:     names,
			MoreCount: more,
		}
	}
	return projection, nil
}

// Set records userID's reaction of the given type on mediaID. The type
// must exist and be active. Re-submitting an existing reaction is
// idempotent; a supplied author name refreshes the stored snapshot. On
// first creation without a supplied name the identity directory is
// consulted best-effort.
func (s *ReactionService) Set(ctx context.Context, mediaID, userID, reactionTypeID, authorName string) (*dto.ReactionProjection, error) {
	rt, err := s.types.GetByID(ctx, reactionTypeID)
	if err != nil {
		return nil, err
	}
	if !rt.IsActive {
		return nil, domain.ErrReactionTypeInactive
	}

	var name *string
	if trimmed := strings.TrimSpace(authorName); trimmed != "" {
		name = &trimmed
	}

	if name == nil {
		exists, err := s.reactions.Exists(ctx, mediaID, userID, rt.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			name = s.lookupDisplayName(ctx, userID)
		}
	}

	reaction := &domain.Reaction{
		ID:             uuid.NewString(),
		MediaID:        mediaID,
		UserID:         userID,
		ReactionTypeID: rt.ID,
		AuthorName:     name,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.reactions.Upsert(ctx, reaction); err != nil {
		return nil, err
	}

	return s.Projection(ctx, mediaID, userID)
}

// Unset removes userID's reactions on mediaID, scoped to one type when
// reactionTypeID is non-empty. Removing a reaction that was never set
// is a no-op.
func (s *ReactionService) Unset(ctx context.Context, mediaID, userID, reactionTypeID string) (*dto.ReactionProjection, error) {
	if err := s.reactions.DeleteByUser(ctx, mediaID, userID, reactionTypeID); err != nil {
		return nil, err
	}
	return s.Projection(ctx, mediaID, userID)
}

// lookupDisplayName asks the identity directory for the user's display
// name. Failures are swallowed: enrichment never blocks or fails the
// write.
func (s *ReactionService) lookupDisplayName(ctx context.Context, userID string) *string {
	if s.directory == nil {
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, directoryLookupTimeout)
	defer cancel()

	profile, err := s.directory.Lookup(lookupCtx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("directory lookup failed, storing reaction without author name")
		return nil
	}
	if profile.DisplayName == "" {
		return nil
	}
	name := profile.DisplayName
	return &name
}

func containsName(list []string, name string) bool {
	for _, existing := range list {
		if existing == name {
			return true
		}
	}
	return false
}
