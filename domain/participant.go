package domain

import "time"

// Participant is a contributor that media items are attributed to.
type Participant struct {
	ID        string    `bson:"_id,omitempty"`
	Name      string    `bson:"name"`
	ImageURL  string    `bson:"image_url,omitempty"`
	UserID    string    `bson:"user_id"` // admin who created the record
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
