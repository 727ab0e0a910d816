package http

import (
	"net/http"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// AssembleRoute handles POST /api/routes/assemble - groups pending orders into
// a route for an available courier. Store users may only route their own orders.
func (s *Server) AssembleRoute(c echo.Context) error {
	var req AssembleRouteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromBytes(req.CourierID[:])
	if err != nil {
		return err
	}
	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return idErr
		}
		orderIDs = append(orderIDs, id)
	}
	if err = s.ensureOwnsOrders(c, orderIDs); err != nil {
		return err
	}

	cmd, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), courierID, orderIDs, req.OriginAddress)
	if err != nil {
		return err
	}
	res, err := s.cmd.AssembleRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AssembleRouteResponse{
		Route:   queries.NewRouteView(res.Route),
		Stops:   newRouteStops(res.Orders),
		Courier: queries.NewCourierView(res.Courier),
	})
}

// ListRoutes handles GET /api/routes[?status&courier_id].
func (s *Server) ListRoutes(c echo.Context) error {
	status, err := queryString(c, "status")
	if err != nil {
		return err
	}
	courierID, err := queryID(c, "courier_id")
	if err != nil {
		return err
	}
	query, err := queries.NewListRoutesQuery(status, courierID)
	if err != nil {
		return err
	}
	routes, err := s.qry.ListRoutes.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, routes)
}

// StartRoute handles PATCH /api/routes/:id/start.
func (s *Server) StartRoute(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err = s.ensureOwnsRoute(c, id); err != nil {
		return err
	}
	cmd, err := commands.NewStartRouteCommand(id)
	if err != nil {
		return err
	}
	started, err := s.cmd.StartRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewRouteView(started))
}

// CompleteRoute handles PATCH /api/routes/:id/complete - frees the courier.
func (s *Server) CompleteRoute(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err = s.ensureOwnsRoute(c, id); err != nil {
		return err
	}
	cmd, err := commands.NewCompleteRouteCommand(id)
	if err != nil {
		return err
	}
	completed, err := s.cmd.CompleteRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewRouteView(completed))
}
