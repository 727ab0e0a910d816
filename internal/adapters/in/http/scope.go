package http

import (
	"errors"

	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// scopedStoreID narrows a store filter to the caller's store for store users.
// Anonymous callers keep the requested filter.
func scopedStoreID(c echo.Context, requested *kernel.UUID) (*kernel.UUID, error) {
	p, ok := principalFrom(c)
	if !ok {
		return requested, nil
	}
	return p.ScopeStoreID(requested)
}

// callerStore is the store a store user is pinned to, nil for everyone else.
func callerStore(c echo.Context) (*kernel.UUID, error) {
	return scopedStoreID(c, nil)
}

// ownedOrder loads an order. Orders of other stores read as missing to store users.
func (s *Server) ownedOrder(c echo.Context, id kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return queries.OrderView{}, err
	}
	view, err := s.qry.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return queries.OrderView{}, err
	}

	storeID, err := callerStore(c)
	if err != nil {
		return queries.OrderView{}, err
	}
	if storeID != nil && view.StoreID != storeID.Bytes() {
		return queries.OrderView{}, errs.NewObjectNotFoundError("order", id)
	}
	return view, nil
}

// ensureOwnsOrders rejects store users naming orders of another store.
func (s *Server) ensureOwnsOrders(c echo.Context, ids []kernel.UUID) error {
	storeID, err := callerStore(c)
	if err != nil || storeID == nil {
		return err
	}
	for _, id := range ids {
		if _, err = s.ownedOrder(c, id); err != nil {
			return err
		}
	}
	return nil
}

// ensureOwnsRoute lets store users act only on routes made of their own orders.
func (s *Server) ensureOwnsRoute(c echo.Context, id kernel.UUID) error {
	storeID, err := callerStore(c)
	if err != nil || storeID == nil {
		return err
	}

	query, err := queries.NewGetRouteQuery(id)
	if err != nil {
		return err
	}
	view, err := s.qry.GetRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(view.OrderIDs))
	for _, raw := range view.OrderIDs {
		orderID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return idErr
		}
		ids = append(ids, orderID)
	}
	if err = s.ensureOwnsOrders(c, ids); errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewObjectNotFoundError("route", id)
	}
	return err
}

// ensureOwnsPayment hides payments of other stores from store users.
func (s *Server) ensureOwnsPayment(c echo.Context, id kernel.UUID) error {
	storeID, err := callerStore(c)
	if err != nil || storeID == nil {
		return err
	}

	query, err := queries.NewGetPaymentQuery(id)
	if err != nil {
		return err
	}
	view, err := s.qry.GetPayment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if view.StoreID != storeID.Bytes() {
		return errs.NewObjectNotFoundError("payment", id)
	}
	return nil
}

// ensureOwnsStore lets store users touch only their own store.
func ensureOwnsStore(c echo.Context, id kernel.UUID) error {
	storeID, err := callerStore(c)
	if err != nil || storeID == nil {
		return err
	}
	if !storeID.IsEqual(id) {
		return errs.NewObjectNotFoundError("store", id)
	}
	return nil
}
