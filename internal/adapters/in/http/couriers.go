package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListCouriers handles GET /api/couriers[?status=].
func (s *Server) ListCouriers(c echo.Context) error {
	status, err := queryString(c, "status")
	if err != nil {
		return err
	}
	query, err := queries.NewListCouriersQuery(status)
	if err != nil {
		return err
	}
	couriers, err := s.qry.ListCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, couriers)
}

// ListAvailableCouriers handles GET /api/couriers/available - best rated first.
func (s *Server) ListAvailableCouriers(c echo.Context) error {
	couriers, err := s.qry.ListCouriers.Handle(c.Request().Context(), queries.NewListAvailableCouriersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, couriers)
}

// GetCourier handles GET /api/couriers/:id.
func (s *Server) GetCourier(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return err
	}
	view, err := s.qry.GetCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CreateCourier handles POST /api/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var req CreateCourierRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), courier.Profile{
		Name:    req.Name,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Vehicle: req.Vehicle,
		Plate:   req.Plate,
		License: req.License,
		PixKey:  req.PixKey,
	})
	if err != nil {
		return err
	}
	created, err := s.cmd.CreateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, queries.NewCourierView(created))
}

// ChangeCourierStatus handles PATCH /api/couriers/:id/status.
func (s *Server) ChangeCourierStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req CourierStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewChangeCourierStatusCommand(id, req.Status)
	if err != nil {
		return err
	}
	updated, err := s.cmd.ChangeCourierStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewCourierView(updated))
}

// RecordCourierPosition handles PATCH /api/couriers/:id/gps - stores a GPS ping.
func (s *Server) RecordCourierPosition(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req PositionRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRecordCourierPositionCommand(kernel.NewUUID(), id, req.Lat, req.Lng, req.SpeedKmh, req.AccuracyM)
	if err != nil {
		return err
	}
	ping, err := s.cmd.RecordCourierPosition.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewPingView(ping))
}
