package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/dto"
	apierrors "github.com/mediarepo/admin-api/errors"
)

const statsMonths = 12

func (s *Server) OverviewHandler(c echo.Context) error {
	ctx := c.Request().Context()

	mediaCount, err := s.medias.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("media count failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}
	participantCount, err := s.participants.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("participant count failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	return c.JSON(http.StatusOK, dto.OverviewResponse{
		MediaCount:       mediaCount,
		ParticipantCount: participantCount,
	})
}

func (s *Server) MediaPerMonthHandler(c echo.Context) error {
	buckets, err := s.medias.CountPerMonth(c.Request().Context(), statsMonths)
	if err != nil {
		log.Error().Err(err).Msg("media per month failed")
		return c.JSON(http.StatusInternalServerError, apierrors.NewServerError("Internal error"))
	}

	out := make([]dto.MonthlyCountResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.MonthlyCountResponse{Year: b.Year, Month: b.Month, Count: b.Count})
	}
	return c.JSON(http.StatusOK, out)
}
