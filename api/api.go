// Package api exposes the admin console's HTTP surface: the bridge
// token exchange, the public feed, the reaction layer, and the CRUD
// endpoints for media items, participants, comments, and reaction
// types.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mediarepo/admin-api/apptoken"
	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/feed"
	"github.com/mediarepo/admin-api/internal/federation"
	"github.com/mediarepo/admin-api/middleware"
	"github.com/mediarepo/admin-api/services"
)

// Server holds the API's collaborators.
type Server struct {
	tokens       *apptoken.Service
	external     federation.SubjectVerifier
	directory    federation.Directory // optional
	resolver     *middleware.Resolver
	sessions     middleware.SessionAuthenticator
	paginator    *feed.Paginator
	reactions    *services.ReactionService
	medias       domain.MediaRepository
	participants domain.ParticipantRepository
	types        domain.ReactionTypeRepository
	comments     domain.CommentRepository
}

// NewServer wires the API over its collaborators.
func NewServer(
	tokens *apptoken.Service,
	external federation.SubjectVerifier,
	directory federation.Directory,
	resolver *middleware.Resolver,
	sessions middleware.SessionAuthenticator,
	paginator *feed.Paginator,
	reactions *services.ReactionService,
	medias domain.MediaRepository,
	participants domain.ParticipantRepository,
	types domain.ReactionTypeRepository,
	comments domain.CommentRepository,
) *Server {
	return &Server{
		tokens:       tokens,
		external:     external,
		directory:    directory,
		resolver:     resolver,
		sessions:     sessions,
		paginator:    paginator,
		reactions:    reactions,
		medias:       medias,
		participants: participants,
		types:        types,
		comments:     comments,
	}
}

// RegisterRoutes attaches every endpoint to e. Cross-domain callers
// need CORS with the Authorization header allowed.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	requireAuth := middleware.RequireAuth(s.resolver)
	requireSession := middleware.RequireSession(s.sessions)
	optionalSession := middleware.OptionalSession(s.sessions)

	e.POST("/api/auth/exchange", s.ExchangeHandler)

	e.GET("/api/medias/feed", s.FeedHandler)

	e.GET("/api/medias/:mediaId/reactions", s.GetReactionsHandler, requireAuth)
	e.POST("/api/medias/:mediaId/reactions", s.SetReactionHandler, requireAuth)
	e.DELETE("/api/medias/:mediaId/reactions", s.UnsetReactionHandler, requireAuth)

	e.GET("/api/reactions/types", s.ListReactionTypesHandler, optionalSession)
	e.POST("/api/reactions/types", s.CreateReactionTypeHandler, requireSession)
	e.PATCH("/api/reactions/types", s.UpdateReactionTypeHandler, requireSession)
	e.DELETE("/api/reactions/types", s.DeleteReactionTypeHandler, requireSession)

	e.GET("/api/medias", s.ListMediasHandler)
	e.POST("/api/medias", s.CreateMediaHandler, requireSession)
	e.GET("/api/medias/archived", s.ListArchivedMediasHandler)
	e.GET("/api/medias/:mediaId", s.GetMediaHandler)
	e.PATCH("/api/medias/:mediaId", s.UpdateMediaHandler, requireSession)
	e.DELETE("/api/medias/:mediaId", s.DeleteMediaHandler, requireSession)
	e.POST("/api/medias/:mediaId/view", s.RecordViewHandler, requireAuth)

	e.GET("/api/medias/:mediaId/comments", s.ListCommentsHandler, requireAuth)
	e.POST("/api/medias/:mediaId/comments", s.CreateCommentHandler, requireAuth)
	e.DELETE("/api/medias/:mediaId/comments/:commentId", s.DeleteCommentHandler, requireSession)

	e.GET("/api/participants", s.ListParticipantsHandler)
	e.POST("/api/participants", s.CreateParticipantHandler, requireSession)
	e.GET("/api/participants/:participantId", s.GetParticipantHandler)
	e.PATCH("/api/participants/:participantId", s.UpdateParticipantHandler, requireSession)
	e.DELETE("/api/participants/:participantId", s.DeleteParticipantHandler, requireSession)

	e.GET("/api/stats/overview", s.OverviewHandler, requireSession)
	e.GET("/api/stats/media-per-month", s.MediaPerMonthHandler, requireSession)
}
