package domain

import "time"

// Session is an admin-domain login session, written by the admin
// front-end's auth callback and read here to authenticate same-domain
// cookie requests.
type Session struct {
	ID        string    `bson:"_id,omitempty"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
