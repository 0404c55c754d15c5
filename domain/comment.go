package domain

import "time"

// Comment is a user comment on a media item. Author fields are
// best-effort snapshots from the identity directory at creation time.
type Comment struct {
	ID             string    `bson:"_id,omitempty"`
	MediaID        string    `bson:"media_id"`
	UserID         string    `bson:"user_id"`
	Body           string    `bson:"body"`
	AuthorName     *string   `bson:"author_name,omitempty"`
	AuthorImageURL *string   `bson:"author_image_url,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}
