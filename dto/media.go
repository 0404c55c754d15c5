package dto

import (
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// MediaResponse is the JSON shape of a media item.
type MediaResponse struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	URL           string    `json:"url"`
	ParticipantID string    `json:"participantId"`
	IsFlagged     bool      `json:"isFlagged"`
	ViewCount     int64     `json:"viewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromMedia converts a domain media item.
func FromMedia(m *domain.Media) *MediaResponse {
	return &MediaResponse{
		ID:            m.ID,
		Label:         m.Label,
		URL:           m.URL,
		ParticipantID: m.ParticipantID,
		IsFlagged:     m.IsFlagged,
		ViewCount:     m.ViewCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromMediaList converts a slice of domain media items.
func FromMediaList(items []*domain.Media) []*MediaResponse {
	out := make([]*MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromMedia(m))
	}
	return out
}

// FeedPageResponse is one page of the public feed. NextCursor is null
// when the results ended.
type FeedPageResponse struct {
	Items      []*MediaResponse `json:"items"`
	NextCursor *int             `json:"nextCursor"`
}
