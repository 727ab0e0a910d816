package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// IngestOcrSlip handles POST /api/ocr/ingest - stores the recognized text of a
// delivery slip together with the fields extracted from it.
func (s *Server) IngestOcrSlip(c echo.Context) error {
	var req IngestOcrRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	requested, err := optionalID(req.StoreID)
	if err != nil {
		return err
	}
	storeID, err := scopedStoreID(c, requested)
	if err != nil {
		return err
	}

	cmd, err := commands.NewIngestOcrSlipCommand(kernel.NewUUID(), storeID, req.PhotoRef, req.RawText)
	if err != nil {
		return err
	}
	slip, err := s.cmd.IngestOcrSlip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newOcrSlipView(slip))
}
