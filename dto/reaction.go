package dto

// TypeCount is one entry of the per-type reaction tally.
type TypeCount struct {
	ReactionTypeID string `json:"reactionTypeId"`
	Count          int64  `json:"count"`
}

// TopReactors is a bounded, recency-biased sample of distinct display
// names for one reaction type, plus how many reactors the sample left
// out.
type TopReactors struct {
	Names     []string `json:"names"`
	MoreCount int64    `json:"moreCount"`
}

// ReactionProjection is the consistent post-condition snapshot every
// reaction operation returns.
type ReactionProjection struct {
	Counts            []TypeCount            `json:"counts"`
	MyReactionTypeIDs []string               `json:"myReactionTypeIds"`
	TopReactorsByType map[string]TopReactors `json:"topReactorsByType"`
}

// SetReactionRequest is the POST body for setting a reaction.
type SetReactionRequest struct {
	ReactionTypeID string `json:"reactionTypeId"`
	AuthorName     string `json:"authorName,omitempty"`
}

// UnsetReactionRequest is the DELETE body; an empty ReactionTypeID
// removes the caller's reactions of every type.
type UnsetReactionRequest struct {
	ReactionTypeID string `json:"reactionTypeId,omitempty"`
}
