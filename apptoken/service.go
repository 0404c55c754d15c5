package apptoken

import (
	"errors"
	"time"
)

// Trust constants identifying the admin→client bridge. Both sides of
// the exchange check them verbatim.
const (
	Issuer   = "media-repository-admin"
	Audience = "media-repository-client"
)

const (
	// MinTTL is the floor applied to every issued token regardless of
	// the requested TTL.
	MinTTL = 60 * time.Second
	// DefaultTTL applies when the caller does not request a TTL.
	DefaultTTL = time.Hour
)

var (
	// ErrNoSecret is returned when the service was built without a
	// signing secret. Issuance treats this as a hard failure;
	// verification treats it as "no valid token".
	ErrNoSecret = errors.New("apptoken: signing secret is not configured")

	ErrMissingSubject = errors.New("apptoken: subject is required")
	ErrExpired        = errors.New("apptoken: token expired")
	ErrClaimMismatch  = errors.New("apptoken: issuer or audience mismatch")
)

// Service mints and verifies bridge tokens. The secret is injected once
// at construction; there is no ambient configuration lookup. Tokens are
// never stored and cannot be revoked before their natural expiry.
type Service struct {
	secret   []byte
	issuer   string
	audience string

	now func() time.Time
}

// NewService builds a token service with the shared signing secret.
func NewService(secret []byte) *Service {
	return &Service{
		secret:   secret,
		issuer:   Issuer,
		audience: Audience,
		now:      time.Now,
	}
}

// IssuedToken is the result of a successful issuance.
type IssuedToken struct {
	Token     string
	ExpiresAt int64 // unix seconds
}

// Issue mints a token for the given subject. A non-positive ttl selects
// DefaultTTL; anything below MinTTL is raised to MinTTL.
func (s *Service) Issue(subject string, ttl time.Duration) (IssuedToken, error) {
	if len(s.secret) == 0 {
		return IssuedToken{}, ErrNoSecret
	}
	if subject == "" {
		return IssuedToken{}, ErrMissingSubject
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ttl < MinTTL {
		ttl = MinTTL
	}

	now := s.now().Unix()
	claims := Claims{
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now + int64(ttl.Seconds()),
		Issuer:    s.issuer,
		Audience:  s.audience,
	}

	token, err := Encode(claims, s.secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}

// Verify checks the token's signature and claims and returns its
// subject. Any failure, including a missing secret, yields an error and
// no identity.
func (s *Service) Verify(token string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}

	claims, err := Decode(token, s.secret)
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	if claims.Issuer != s.issuer || claims.Audience != s.audience {
		return "", ErrClaimMismatch
	}
	if claims.ExpiresAt <= s.now().Unix() {
		return "", ErrExpired
	}
	return claims.Subject, nil
}
