package dto

import (
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// ParticipantResponse is the JSON shape of a contributor.
type ParticipantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromParticipant converts a domain participant.
func FromParticipant(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:        p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromParticipantList converts a slice of domain participants.
func FromParticipantList(items []*domain.Participant) []*ParticipantResponse {
	out := make([]*ParticipantResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromParticipant(p))
	}
	return out
}
