// Package middleware resolves the caller identity for every protected
// endpoint, bridging two trust paths: bridge tokens minted by this
// system for cross-domain callers, and native cookie sessions for
// same-domain callers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/apptoken"
	apierrors "github.com/mediarepo/admin-api/errors"
)

// userIDContextKey stores the resolved user id on the echo context.
const userIDContextKey = "auth.user_id"

// SessionAuthenticator reports the identity behind the request's native
// session, or "" when there is none. It is an external collaborator;
// this package never inspects session internals.
type SessionAuthenticator interface {
	UserID(c echo.Context) (string, error)
}

// Resolver picks between bearer-token verification and session auth.
//
// The policy is fixed and fail-closed: a request carrying a bearer
// credential is judged by that credential alone. An invalid or expired
// bearer token never falls back to the session, so a forged credential
// cannot silently degrade to a different identity.
type Resolver struct {
	tokens   *apptoken.Service
	sessions SessionAuthenticator
}

// NewResolver builds a resolver over the given verifier and session
// collaborator.
func NewResolver(tokens *apptoken.Service, sessions SessionAuthenticator) *Resolver {
	return &Resolver{tokens: tokens, sessions: sessions}
}

// ResolveUserID returns the caller's user id or "" when the request is
// unauthenticated.
func (r *Resolver) ResolveUserID(c echo.Context) string {
	if bearer, ok := bearerToken(c); ok {
		subject, err := r.tokens.Verify(bearer)
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			return ""
		}
		return subject
	}

	if r.sessions == nil {
		return ""
	}
	userID, err := r.sessions.UserID(c)
	if err != nil {
		log.Warn().Err(err).Msg("session lookup failed")
		return ""
	}
	return userID
}

// bearerToken extracts the Authorization bearer credential. The second
// return is true whenever a bearer header is present, valid or not.
func bearerToken(c echo.Context) (string, bool) {
	header := strings.TrimSpace(c.Request().Header.Get("Authorization"))
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireAuth rejects unauthenticated requests with 401 and stores the
// resolved user id on the context for handlers.
func RequireAuth(resolver *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := resolver.ResolveUserID(c)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, apierrors.NewUnauthenticated("Unauthenticated"))
			}
			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// UserID returns the user id stored by RequireAuth, or "" on routes
// that did not pass through it.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDContextKey).(string)
	return userID
}
