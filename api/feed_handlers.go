package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/dto"
	apierrors "github.com/mediarepo/admin-api/errors"
	"github.com/mediarepo/admin-api/feed"
)

// FeedHandler serves one page of the seed-shuffled public feed.
func (s *Server) FeedHandler(c echo.Context) error {
	query := feed.Query{
		Seed:   c.QueryParam("seed"),
		Filter: domain.MediaFilter{ParticipantID: c.QueryParam("participantId")},
		Cursor: parseIntParam(c.QueryParam("cursor"), 0),
		Take:   parseIntParam(c.QueryParam("take"), 0),
	}

	page, err := s.paginator.Page(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, feed.ErrSeedRequired) {
			return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("seed is required"))
		}
		log.Error().Err(err).Msg("feed page failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	return c.JSON(http.StatusOK, dto.FeedPageResponse{
		Items:      dto.FromMediaList(page.Items),
		NextCursor: page.NextCursor,
	})
}

// parseIntParam returns fallback for empty or non-numeric input.
func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
