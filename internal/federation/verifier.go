// Package federation talks to the client application's identity
// provider: it verifies externally-issued identity tokens during the
// exchange flow and looks up user profiles for best-effort display-name
// enrichment.
package federation

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidExternalToken = errors.New("federation: invalid external identity token")

// SubjectVerifier verifies a token minted by the client domain's
// identity provider and returns the subject it attests to.
type SubjectVerifier interface {
	VerifySubject(ctx context.Context, token string) (string, error)
}

// ClientTokenVerifier verifies RS256 identity tokens against the client
// identity provider's published JWT verification key (PEM).
type ClientTokenVerifier struct {
	key *rsa.PublicKey
}

// NewClientTokenVerifier parses the PEM verification key. An empty key
// is a configuration error surfaced at startup, not at request time.
func NewClientTokenVerifier(pemKey []byte) (*ClientTokenVerifier, error) {
	if len(pemKey) == 0 {
		return nil, errors.New("federation: client IdP verification key is not configured")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("federation: parsing client IdP verification key: %w", err)
	}
	return &ClientTokenVerifier{key: key}, nil
}

// VerifySubject implements SubjectVerifier.
func (v *ClientTokenVerifier) VerifySubject(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(*jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidExternalToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidExternalToken
	}
	return subject, nil
}
