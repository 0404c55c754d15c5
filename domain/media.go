package domain

import "time"

// Media represents a single library item managed through the admin console.
type Media struct {
	ID            string    `bson:"_id,omitempty"`
	Label         string    `bson:"label"`
	URL           string    `bson:"url"`
	ParticipantID string    `bson:"participant_id"`
	UserID        string    `bson:"user_id"` // admin who created the item
	IsFlagged     bool      `bson:"is_flagged"`
	ViewCount     int64     `bson:"view_count"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// MediaFilter narrows the set of items eligible for the public feed.
// Flagged items are always excluded; ParticipantID is an optional
// secondary filter.
type MediaFilter struct {
	ParticipantID string
}

// MonthlyCount is one bucket of the per-month media aggregation used by
// the dashboard graph.
type MonthlyCount struct {
	Year  int   `bson:"year"`
	Month int   `bson:"month"`
	Count int64 `bson:"count"`
}
