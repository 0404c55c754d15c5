package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/dto"
	apierrors "github.com/mediarepo/admin-api/errors"
	"github.com/mediarepo/admin-api/middleware"
)

// ListReactionTypesHandler lists reaction categories. Deactivated
// types are only visible to a session-authenticated admin asking for
// them with all=1.
func (s *Server) ListReactionTypesHandler(c echo.Context) error {
	all := c.QueryParam("all") == "1" && middleware.UserID(c) != ""

	types, err := s.types.List(c.Request().Context(), !all)
	if err != nil {
		log.Error().Err(err).Msg("list reaction types failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromReactionTypeList(types))
}

// CreateReactionTypeHandler creates a reaction category. Keys are
// normalized upper-case.
func (s *Server) CreateReactionTypeHandler(c echo.Context) error {
	var req dto.CreateReactionTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if strings.TrimSpace(req.Key) == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Key is required"))
	}
	if strings.TrimSpace(req.Label) == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Label is required"))
	}

	now := time.Now().UTC()
	rt := &domain.ReactionType{
		ID:        uuid.NewString(),
		Key:       strings.ToUpper(strings.TrimSpace(req.Key)),
		Label:     strings.TrimSpace(req.Label),
		Emoji:     req.Emoji,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Order != nil {
		rt.Order = *req.Order
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := s.types.Create(c.Request().Context(), rt); err != nil {
		log.Error().Err(err).Msg("create reaction type failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromReactionType(rt))
}

// UpdateReactionTypeHandler patches a reaction category; absent fields
// are left untouched.
func (s *Server) UpdateReactionTypeHandler(c echo.Context) error {
	var req dto.UpdateReactionTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("ReactionType id is required"))
	}

	ctx := c.Request().Context()
	rt, err := s.types.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("ReactionType not found"))
		}
		log.Error().Err(err).Msg("load reaction type failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	if req.Key != nil {
		rt.Key = strings.ToUpper(strings.TrimSpace(*req.Key))
	}
	if req.Label != nil {
		rt.Label = strings.TrimSpace(*req.Label)
	}
	if req.Emoji != nil {
		rt.Emoji = req.Emoji
	}
	if req.Order != nil {
		rt.Order = *req.Order
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}
	rt.UpdatedAt = time.Now().UTC()

	if err := s.types.Update(ctx, rt); err != nil {
		log.Error().Err(err).Msg("update reaction type failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromReactionType(rt))
}

// DeleteReactionTypeHandler removes a reaction category.
func (s *Server) DeleteReactionTypeHandler(c echo.Context) error {
	var req dto.DeleteReactionTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if req.ID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("ReactionType id is required"))
	}

	if err := s.types.Delete(c.Request().Context(), req.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("ReactionType not found"))
		}
		log.Error().Err(err).Msg("delete reaction type failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
