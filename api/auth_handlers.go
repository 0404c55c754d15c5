package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/apptoken"
	"github.com/mediarepo/admin-api/dto"
	apierrors "github.com/mediarepo/admin-api/errors"
)

// ExchangeHandler trades a verified external identity token for a
// bridge token. This is the only door from the client identity domain
// into authenticated admin-API writes.
func (s *Server) ExchangeHandler(c echo.Context) error {
	externalToken, ok := bearerFromHeader(c.Request().Header.Get("Authorization"))
	if !ok {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Missing Bearer token"))
	}

	subject, err := s.external.VerifySubject(c.Request().Context(), externalToken)
	if err != nil {
		log.Debug().Err(err).Msg("external identity token rejected")
		return c.JSON(http.StatusUnauthorized, apierrors.NewUnauthenticated("Unauthenticated"))
	}

	issued, err := s.tokens.Issue(subject, apptoken.DefaultTTL)
	if err != nil {
		if errors.Is(err, apptoken.ErrNoSecret) {
			log.Error().Msg("bridge token secret is not configured")
		} else {
			log.Error().Err(err).Msg("failed to issue bridge token")
		}
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Token issuance unavailable"))
	}

	return c.JSON(http.StatusOK, dto.ExchangeResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}

func bearerFromHeader(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
