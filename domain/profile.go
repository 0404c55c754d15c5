package domain

// Profile is the subset of an identity-directory record this system
// snapshots into reactions and comments.
type Profile struct {
	DisplayName string `json:"display_name"`
	ImageURL    string `json:"image_url,omitempty"`
}
