package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/domain"
	apierrors "github.com/mediarepo/admin-api/errors"
)

// DefaultSessionCookie is the cookie the admin front-end sets after
// login.
const DefaultSessionCookie = "admin_session"

// CookieSessionAuthenticator resolves the native admin session from a
// cookie-backed session store.
type CookieSessionAuthenticator struct {
	sessions   domain.SessionRepository
	cookieName string

	now func() time.Time
}

// NewCookieSessionAuthenticator builds a session authenticator reading
// the named cookie. An empty name selects DefaultSessionCookie.
func NewCookieSessionAuthenticator(sessions domain.SessionRepository, cookieName string) *CookieSessionAuthenticator {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &CookieSessionAuthenticator{
		sessions:   sessions,
		cookieName: cookieName,
		now:        time.Now,
	}
}

// UserID implements SessionAuthenticator. A missing cookie, an unknown
// token, or an expired session all report "no identity" without error;
// only storage failures surface as errors.
func (a *CookieSessionAuthenticator) UserID(c echo.Context) (string, error) {
	cookie, err := c.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		if errors.Is(err, http.ErrNoCookie) || err == nil {
			return "", nil
		}
		return "", err
	}

	session, err := a.sessions.GetByToken(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	if session.Expired(a.now()) {
		return "", nil
	}
	return session.UserID, nil
}

// RequireSession gates admin mutations: only the native session path
// counts, bridge tokens are not accepted.
func RequireSession(sessions SessionAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := sessions.UserID(c)
			if err != nil {
				log.Warn().Err(err).Msg("session lookup failed")
			}
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, apierrors.NewUnauthenticated("Unauthenticated"))
			}
			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// OptionalSession stores the session identity when one exists and lets
// the request through either way.
func OptionalSession(sessions SessionAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := sessions.UserID(c)
			if err != nil {
				log.Warn().Err(err).Msg("session lookup failed")
			}
			if userID != "" {
				c.Set(userIDContextKey, userID)
			}
			return next(c)
		}
	}
}
