package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/dto"
	apierrors "github.com/mediarepo/admin-api/errors"
	"github.com/mediarepo/admin-api/middleware"
)

// GetReactionsHandler returns the reaction projection for a media item
// as seen by the caller.
func (s *Server) GetReactionsHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	projection, err := s.reactions.Projection(c.Request().Context(), mediaID, middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("mediaID", mediaID).Msg("reaction projection failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, projection)
}

// SetReactionHandler records or refreshes the caller's reaction and
// returns the fresh projection.
func (s *Server) SetReactionHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	var req dto.SetReactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if req.ReactionTypeID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("reactionTypeId is required"))
	}

	projection, err := s.reactions.Set(c.Request().Context(), mediaID, middleware.UserID(c), req.ReactionTypeID, req.AuthorName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReactionTypeInactive) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("ReactionType not found"))
		}
		log.Error().Err(err).Str("mediaID", mediaID).Msg("set reaction failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, projection)
}

// UnsetReactionHandler removes the caller's reaction(s) and returns the
// fresh projection. The body is optional; without one, every type is
// removed.
func (s *Server) UnsetReactionHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	var req dto.UnsetReactionRequest
	if err := c.Bind(&req); err != nil {
		req = dto.UnsetReactionRequest{}
	}

	projection, err := s.reactions.Unset(c.Request().Context(), mediaID, middleware.UserID(c), req.ReactionTypeID)
	if err != nil {
		log.Error().Err(err).Str("mediaID", mediaID).Msg("unset reaction failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, projection)
}
