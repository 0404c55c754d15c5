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

type participantRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func (s *Server) ListParticipantsHandler(c echo.Context) error {
	participants, err := s.participants.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("list participants failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromParticipantList(participants))
}

func (s *Server) CreateParticipantHandler(c echo.Context) error {
	var req participantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Name is required"))
	}

	now := time.Now().UTC()
	participant := &domain.Participant{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		UserID:    middleware.UserID(c),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.participants.Create(c.Request().Context(), participant); err != nil {
		log.Error().Err(err).Msg("create participant failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromParticipant(participant))
}

func (s *Server) GetParticipantHandler(c echo.Context) error {
	participantID := c.Param("participantId")
	if participantID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Participant ID is required"))
	}

	participant, err := s.participants.GetByID(c.Request().Context(), participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Participant not found"))
		}
		log.Error().Err(err).Msg("get participant failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromParticipant(participant))
}

func (s *Server) UpdateParticipantHandler(c echo.Context) error {
	participantID := c.Param("participantId")
	if participantID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Participant ID is required"))
	}

	var req participantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Name is required"))
	}

	ctx := c.Request().Context()
	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Participant not found"))
		}
		log.Error().Err(err).Msg("load participant failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	participant.Name = strings.TrimSpace(req.Name)
	participant.ImageURL = strings.TrimSpace(req.ImageURL)
	participant.UserID = middleware.UserID(c)
	participant.UpdatedAt = time.Now().UTC()

	if err := s.participants.Update(ctx, participant); err != nil {
		log.Error().Err(err).Msg("update participant failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromParticipant(participant))
}

func (s *Server) DeleteParticipantHandler(c echo.Context) error {
	participantID := c.Param("participantId")
	if participantID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Participant ID is required"))
	}

	if err := s.participants.Delete(c.Request().Context(), participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Participant not found"))
		}
		log.Error().Err(err).Msg("delete participant failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
