package dto

import (
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// CommentResponse is the JSON shape of a media comment.
type CommentResponse struct {
	ID             string    `json:"id"`
	MediaID        string    `json:"mediaId"`
	UserID         string    `json:"userId"`
	Body           string    `json:"body"`
	AuthorName     *string   `json:"authorName"`
	AuthorImageURL *string   `json:"authorImageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromComment converts a domain comment.
func FromComment(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:             c.ID,
		MediaID:        c.MediaID,
		UserID:         c.UserID,
		Body:           c.Body,
		AuthorName:     c.AuthorName,
		AuthorImageURL: c.AuthorImageURL,
		CreatedAt:      c.CreatedAt,
	}
}

// FromCommentList converts a slice of domain comments.
func FromCommentList(items []*domain.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromComment(c))
	}
	return out
}

// CreateCommentRequest is the POST body for a new comment.
type CreateCommentRequest struct {
	Body string `json:"body"`
}
