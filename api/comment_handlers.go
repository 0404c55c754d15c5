package api

import (
	"context"
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

const maxCommentsPerMedia = 200

func (s *Server) ListCommentsHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	comments, err := s.comments.ListByMedia(c.Request().Context(), mediaID, maxCommentsPerMedia)
	if err != nil {
		log.Error().Err(err).Str("media_id", mediaID).Msg("list comments failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromCommentList(comments))
}

func (s *Server) CreateCommentHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	if mediaID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Media ID is required"))
	}

	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Invalid request body"))
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Comment body is required"))
	}

	ctx := c.Request().Context()
	if _, err := s.medias.GetByID(ctx, mediaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Media not found"))
		}
		log.Error().Err(err).Str("media_id", mediaID).Msg("load media failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	userID := middleware.UserID(c)
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		MediaID:   mediaID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	s.enrichCommentAuthor(ctx, comment)

	if err := s.comments.Create(ctx, comment); err != nil {
		log.Error().Err(err).Str("media_id", mediaID).Msg("create comment failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, dto.FromComment(comment))
}

func (s *Server) DeleteCommentHandler(c echo.Context) error {
	mediaID := c.Param("mediaId")
	commentID := c.Param("commentId")
	if mediaID == "" || commentID == "" {
		return c.JSON(http.StatusBadRequest, apierrors.NewBadRequest("Comment ID is required"))
	}

	ctx := c.Request().Context()
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Comment not found"))
		}
		log.Error().Err(err).Str("comment_id", commentID).Msg("load comment failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	if comment.MediaID != mediaID {
		return c.JSON(http.StatusNotFound, apierrors.NewNotFound("Comment not found"))
	}
	if comment.UserID != middleware.UserID(c) {
		return c.JSON(http.StatusForbidden, apierrors.NewForbidden("Forbidden"))
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		log.Error().Err(err).Str("comment_id", commentID).Msg("delete comment failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// enrichCommentAuthor snapshots the author's display name and avatar
// from the identity directory. Lookup failures leave the fields nil.
func (s *Server) enrichCommentAuthor(ctx context.Context, comment *domain.Comment) {
	if s.directory == nil {
		return
	}
	lookupCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	profile, err := s.directory.Lookup(lookupCtx, comment.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", comment.UserID).Msg("author lookup failed")
		return
	}
	if name := strings.TrimSpace(profile.DisplayName); name != "" {
		comment.AuthorName = &name
	}
	if profile.ImageURL != "" {
		img := profile.ImageURL
		comment.AuthorImageURL = &img
	}
}
