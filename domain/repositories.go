package domain

import (
	"context"
)

// MediaRepository defines persistence for media items.
type MediaRepository interface {
	Create(ctx context.Context, media *Media) error
	GetByID(ctx context.Context, id string) (*Media, error)
	Update(ctx context.Context, media *Media) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Media, error)
	// ListArchived returns flagged items, newest first, optionally
	// filtered by participant.
	ListArchived(ctx context.Context, participantID string) ([]*Media, error)
	// ListEligible returns all feed-eligible items (never flagged)
	// matching the filter. Ordering is left to the caller.
	ListEligible(ctx context.Context, filter MediaFilter) ([]*Media, error)
	// IncrementViewCount atomically bumps the view counter and returns
	// the new value.
	IncrementViewCount(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// CountPerMonth buckets item creation over the trailing N months.
	CountPerMonth(ctx context.Context, months int) ([]MonthlyCount, error)
}

// ParticipantRepository defines persistence for contributors.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	Update(ctx context.Context, participant *Participant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Participant, error)
	Count(ctx context.Context) (int64, error)
}

// ReactionTypeRepository defines persistence for reaction categories.
type ReactionTypeRepository interface {
	Create(ctx context.Context, rt *ReactionType) error
	Update(ctx context.Context, rt *ReactionType) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*ReactionType, error)
	// List returns types ordered by Order then CreatedAt. With
	// activeOnly it omits deactivated types.
	List(ctx context.Context, activeOnly bool) ([]*ReactionType, error)
}

// ReactionRepository defines persistence for reactions. Implementations
// must guarantee at most one row per (media, user, type); concurrent
// duplicate submissions must collapse into a single row.
type ReactionRepository interface {
	// Upsert inserts the reaction when no row exists for its
	// (MediaID, UserID, ReactionTypeID). When a row already exists it
	// updates only the author name snapshot, and only if
	// reaction.AuthorName is non-nil. The check and the write are a
	// single atomic step.
	Upsert(ctx context.Context, reaction *Reaction) error
	Exists(ctx context.Context, mediaID, userID, reactionTypeID string) (bool, error)
	CountsByType(ctx context.Context, mediaID string) ([]TypeCount, error)
	// ListUserTypeIDs returns the reaction type ids the given user has
	// set on the media item.
	ListUserTypeIDs(ctx context.Context, mediaID, userID string) ([]string, error)
	// ListRecent returns up to limit reactions on the media item,
	// newest first, across all types.
	ListRecent(ctx context.Context, mediaID string, limit int) ([]*Reaction, error)
	// DeleteByUser removes the user's reactions on the media item,
	// scoped to one type when reactionTypeID is non-empty. Removing
	// nothing is not an error.
	DeleteByUser(ctx context.Context, mediaID, userID, reactionTypeID string) error
}

// CommentRepository defines persistence for media comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	// ListByMedia returns up to limit comments, newest first.
	ListByMedia(ctx context.Context, mediaID string, limit int) ([]*Comment, error)
	Delete(ctx context.Context, id string) error
}

// SessionRepository reads admin-domain login sessions. Sessions are
// created by the admin front-end, not by this API.
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
}
