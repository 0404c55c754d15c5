package dto

import (
	"time"

	"github.com/mediarepo/admin-api/domain"
)

// ReactionTypeResponse is the JSON shape of a reaction category.
type ReactionTypeResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Emoji     *string   `json:"emoji"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromReactionType converts a domain reaction type.
func FromReactionType(rt *domain.ReactionType) *ReactionTypeResponse {
	return &ReactionTypeResponse{
		ID:        rt.ID,
		Key:       rt.Key,
		Label:     rt.Label,
		Emoji:     rt.Emoji,
		Order:     rt.Order,
		IsActive:  rt.IsActive,
		CreatedAt: rt.CreatedAt,
		UpdatedAt: rt.UpdatedAt,
	}
}

// FromReactionTypeList converts a slice of domain reaction types.
func FromReactionTypeList(types []*domain.ReactionType) []*ReactionTypeResponse {
	out := make([]*ReactionTypeResponse, 0, len(types))
	for _, rt := range types {
		out = append(out, FromReactionType(rt))
	}
	return out
}

// CreateReactionTypeRequest is the POST body for the admin CRUD.
type CreateReactionTypeRequest struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Emoji    *string `json:"emoji"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// UpdateReactionTypeRequest is the PATCH body; nil fields are left
// untouched.
type UpdateReactionTypeRequest struct {
	ID       string  `json:"id"`
	Key      *string `json:"key"`
	Label    *string `json:"label"`
	Emoji    *string `json:"emoji"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// DeleteReactionTypeRequest is the DELETE body.
type DeleteReactionTypeRequest struct {
	ID string `json:"id"`
}
