package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/route"
)

// RouteLinkBuilder turns stop addresses into navigation links.
type RouteLinkBuilder interface {
	Build(origin string, stops []string) route.Links
}

// AssembleRouteResult is the persisted route with its stops in delivery order.
type AssembleRouteResult struct {
	Route   *route.Route
	Orders  []*order.Order
	Courier *courier.Courier
}

// AssembleRouteCommandHandler creates a route, accepts its orders for the courier
// and puts the courier on route, all in one transaction.
//
// Business rules:
//   - the courier and every order must exist (errs.ErrObjectNotFound)
//   - every order must be pending (errs.ErrConflict)
//   - the courier must be available (errs.ErrConflict)
//   - total fee is the number of stops times the fixed fee
//
// Any failure leaves route, orders and courier untouched.
type AssembleRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	links      RouteLinkBuilder
	feePerStop kernel.Money
	now        Clock
}

func NewAssembleRouteCommandHandler(
	uowFactory RouteUoWFactory,
	links RouteLinkBuilder,
	feePerStop kernel.Money,
	now Clock,
) AssembleRouteCommandHandler {
	return AssembleRouteCommandHandler{
		uowFactory: uowFactory,
		links:      links,
		feePerStop: feePerStop.OrDefault(kernel.DefaultPlatformFee),
		now:        clockOrSystem(now),
	}
}

func (h *AssembleRouteCommandHandler) Handle(ctx context.Context, cmd AssembleRouteCommand) (AssembleRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssembleRouteResult{}, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (AssembleRouteResult, error) {
		return h.handle(ctx, cmd)
	})
}

func (h *AssembleRouteCommandHandler) handle(ctx context.Context, cmd AssembleRouteCommand) (AssembleRouteResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssembleRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return AssembleRouteResult{}, err
	}

	orders := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, id := range cmd.OrderIDs() {
		o, getErr := orderRepo.Get(ctx, id)
		if getErr != nil {
			return AssembleRouteResult{}, getErr
		}
		orders = append(orders, o)
	}

	now := h.now()
	addresses := make([]string, 0, len(orders))
	for _, o := range orders {
		if err = o.AssignToRoute(c.ID(), now); err != nil {
			return AssembleRouteResult{}, err
		}
		addresses = append(addresses, o.Customer().Address)
	}

	if err = c.StartRoute(); err != nil {
		return AssembleRouteResult{}, err
	}

	r, err := route.NewRoute(
		cmd.RouteID(), c.ID(), cmd.OrderIDs(), h.links.Build(cmd.Origin(), addresses), h.feePerStop, now,
	)
	if err != nil {
		return AssembleRouteResult{}, err
	}

	if err = uow.RouteRepository().Add(ctx, r); err != nil {
		return AssembleRouteResult{}, err
	}
	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return AssembleRouteResult{}, err
		}
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return AssembleRouteResult{}, err
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID().String())
	}
	uow.Record(events.RouteAssembled{
		RouteID:   r.ID().String(),
		CourierID: c.ID().String(),
		OrderIDs:  orderIDs,
		TotalFee:  r.TotalFee().String(),
		At:        now,
	})

	if err = uow.Commit(ctx); err != nil {
		return AssembleRouteResult{}, err
	}

	return AssembleRouteResult{Route: r, Orders: orders, Courier: c}, nil
}
