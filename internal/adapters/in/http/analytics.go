package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// AnalyticsSummary handles GET /api/analytics/summary/:store_id.
func (s *Server) AnalyticsSummary(c echo.Context) error {
	requested, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	storeID, err := scopedStoreID(c, &requested)
	if err != nil {
		return err
	}

	query, err := queries.NewAnalyticsSummaryQuery(*storeID, s.now())
	if err != nil {
		return err
	}
	summary, err := s.qry.AnalyticsSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
