package domain

import "time"

// ReactionType is an administrator-defined reaction category. Keys are
// stored upper-cased and unique. IsActive=false hides the type from
// default listings and blocks new reactions without deleting history.
type ReactionType struct {
	ID        string    `bson:"_id,omitempty"`
	Key       string    `bson:"key"`
	Label     string    `bson:"label"`
	Emoji     *string   `bson:"emoji,omitempty"`
	Order     int       `bson:"order"`
	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Reaction is one user's reaction of one type on one media item. The
// storage layer keeps at most one document per
// (media_id, user_id, reaction_type_id).
type Reaction struct {
	ID             string    `bson:"_id,omitempty"`
	MediaID        string    `bson:"media_id"`
	UserID         string    `bson:"user_id"`
	ReactionTypeID string    `bson:"reaction_type_id"`
	AuthorName     *string   `bson:"author_name,omitempty"` // denormalized display name, may lag the directory
	CreatedAt      time.Time `bson:"created_at"`
}

// TypeCount is the per-type reaction tally for a media item.
type TypeCount struct {
	ReactionTypeID string `bson:"_id"`
	Count          int64  `bson:"count"`
}
