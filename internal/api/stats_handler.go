package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (s *APIService) statistics(c echo.Context) error {
	counts, err := s.stats.Counts(c.Request().Context())
	if err != nil {
		s.log.Error("fetching statistics failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch statistics")
	}
	return respondOK(c, counts)
}
