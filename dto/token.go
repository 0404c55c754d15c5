package dto

// ExchangeResponse carries a freshly minted bridge token. The token is
// an opaque bearer capability; clients must not parse it.
type ExchangeResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
