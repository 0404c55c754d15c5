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

type mediaRequest struct {
	Label         string `json:"label"`
	URL           string `json:"url"`
	ParticipantID string `json:"participantId"`
	IsFlagged     bool   `json:"isFlagged"`
}

func (r *mediaRequest) validate() *apierrors.APIError {
	if strings.TrimSpace(r.Label) == "" {
		return apierrors.NewBadRequest("Label is required")
	}
	if strings.TrimSpace(r.URL) == "" {
		return apierrors.NewBadRequest("Url is required")
	}
	if strings.TrimSpace(r.ParticipantID) == "" {
		return apierrors.NewBadRequest("Participant ID is required")
	}
	return nil
}

func (s *Server) ListMediasHandler(c echo.Context) error {
	medias, err := s.medias.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("list medias failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromMediaList(medias))
}

func (s *Server) ListArchivedMediasHandler(c echo.Context) error {
	medias, err := s.medias.ListArchived(c.Request().Context(), c.QueryParam("participantId"))
	if err != nil {
		log.Error().Err(err).Msg("list archived medias failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromMediaList(medias))
}

func (s *Server) CreateMediaHandler(c echo.Context) error {
	var req mediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if apiErr := req.validate(); apiErr != nil {
		return c.JSON(http.StatusBadRequest, apiErr)
	}

	now := time.Now().UTC()
	media := &domain.Media{
		ID:            uuid.NewString(),
		Label:         strings.TrimSpace(req.Label),
		URL:           strings.TrimSpace(req.URL),
		ParticipantID: req.ParticipantID,
		UserID:        middleware.UserID(c),
		IsFlagged:     req.IsFlagged,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.medias.Create(c.Request().Context(), media); err != nil {
		log.Error().Err(err).Msg("create media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromMedia(media))
}

func (s *Server) GetMediaHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	media, err := s.medias.GetByID(c.Request().Context(), mediaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Media not found"))
		}
		log.Error().Err(err).Msg("get media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromMedia(media))
}

func (s *Server) UpdateMediaHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	var req mediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	if apiErr := req.validate(); apiErr != nil {
		return c.JSON(http.StatusBadRequest, apiErr)
	}

	ctx := c.Request().Context()
	media, err := s.medias.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Media not found"))
		}
		log.Error().Err(err).Msg("load media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	media.Label = strings.TrimSpace(req.Label)
	media.URL = strings.TrimSpace(req.URL)
	media.ParticipantID = req.ParticipantID
	media.UserID = middleware.UserID(c)
	media.IsFlagged = req.IsFlagged
	media.UpdatedAt = time.Now().UTC()

	if err := s.medias.Update(ctx, media); err != nil {
		log.Error().Err(err).Msg("update media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromMedia(media))
}

func (s *Server) DeleteMediaHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	if err := s.medias.Delete(c.Request().Context(), mediaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Media not found"))
		}
		log.Error().Err(err).Msg("delete media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// RecordViewHandler bumps the view counter for an authenticated
// viewer.
func (s *Server) RecordViewHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	viewCount, err := s.medias.IncrementViewCount(c.Request().Context(), mediaID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Media not found"))
		}
		log.Error().Err(err).Msg("record view failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, map[string]int64{"viewCount": viewCount})
}
