package http

import (
	"net/http"
	"time"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/orders[?status&store_id&courier_id&date&limit].
// Store users only see their own orders whatever store_id says.
func (s *Server) ListOrders(c echo.Context) error {
	status, err := queryString(c, "status")
	if err != nil {
		return err
	}
	storeID, err := queryID(c, "store_id")
	if err != nil {
		return err
	}
	courierID, err := queryID(c, "courier_id")
	if err != nil {
		return err
	}
	date, err := queryDate(c, "date")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	if storeID, err = scopedStoreID(c, storeID); err != nil {
		return err
	}

	var day *time.Time
	if date != nil {
		d := date.Time
		day = &d
	}

	query, err := queries.NewListOrdersQuery(status, storeID, courierID, day, limit)
	if err != nil {
		return err
	}
	orders, err := s.qry.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// ListOverdueOrders handles GET /api/orders/overdue - open orders past their expected delivery.
func (s *Server) ListOverdueOrders(c echo.Context) error {
	orders, err := s.qry.ListOverdueOrders.Handle(c.Request().Context(), queries.NewListOverdueOrdersQuery(s.now()))
	if err != nil {
		return err
	}

	storeID, err := scopedStoreID(c, nil)
	if err != nil {
		return err
	}
	if storeID != nil {
		own := make([]queries.OrderView, 0, len(orders))
		for _, o := range orders {
			if o.StoreID == storeID.Bytes() {
				own = append(own, o)
			}
		}
		orders = own
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id. Orders of other stores are reported
// as missing to store users.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := s.ownedOrder(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CreateOrder handles POST /api/orders. Store users create orders for their own store.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
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
	if storeID == nil {
		return commands.ErrStoreIDIsRequired
	}

	orderValue, err := optionalMoney(req.OrderValue)
	if err != nil {
		return err
	}
	changeFor, err := optionalMoney(req.ChangeFor)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), *storeID,
		order.Customer{
			Name:         req.CustomerName,
			Phone:        req.CustomerPhone,
			Address:      req.CustomerAddress,
			Neighborhood: req.CustomerNeighborhood,
			City:         req.CustomerCity,
			PostalCode:   req.CustomerPostalCode,
			Complement:   req.CustomerComplement,
		},
		order.Details{
			Items:              req.Items,
			OrderValue:         orderValue,
			PaymentMethod:      req.PaymentMethod,
			ChangeFor:          changeFor,
			Notes:              req.Notes,
			Origin:             req.Origin,
			PreparationMinutes: req.PreparationMinutes,
		})
	if err != nil {
		return err
	}
	created, err := s.cmd.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, queries.NewOrderView(created))
}

// ChangeOrderStatus handles PATCH /api/orders/:id/status. Store users may only
// change orders of their own store.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req OrderStatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	if _, err = s.ownedOrder(c, id); err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, req.Status)
	if err != nil {
		return err
	}
	updated, err := s.cmd.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries.NewOrderView(updated))
}

// ConfirmDelivery handles POST /api/orders/:id/confirm - the customer's code
// delivers the order and credits the courier.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ConfirmDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(id, req.Code)
	if err != nil {
		return err
	}
	res, err := s.cmd.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := ConfirmDeliveryResponse{Order: queries.NewOrderView(res.Order)}
	if res.Courier != nil {
		v := queries.NewCourierView(res.Courier)
		resp.Courier = &v
	}
	return c.JSON(http.StatusOK, resp)
}

