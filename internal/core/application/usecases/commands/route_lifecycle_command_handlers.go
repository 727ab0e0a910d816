package commands

import (
	"context"
	"errors"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/pkg/errs"
)

// StartRouteCommandHandler moves a pending route to in_progress.
type StartRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	now        Clock
}

func NewStartRouteCommandHandler(uowFactory RouteUoWFactory, now Clock) StartRouteCommandHandler {
	return StartRouteCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

func (h *StartRouteCommandHandler) Handle(ctx context.Context, cmd StartRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if err = r.Start(now); err != nil {
		return nil, err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	uow.Record(events.RouteStarted{RouteID: r.ID().String(), CourierID: r.CourierID().String(), At: now})

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// CompleteRouteCommandHandler closes a route and releases its courier to available
// in the same transaction.
type CompleteRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	now        Clock
}

func NewCompleteRouteCommandHandler(uowFactory RouteUoWFactory, now Clock) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

func (h *CompleteRouteCommandHandler) Handle(ctx context.Context, cmd CompleteRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (*route.Route, error) {
		return h.handle(ctx, cmd)
	})
}

func (h *CompleteRouteCommandHandler) handle(ctx context.Context, cmd CompleteRouteCommand) (*route.Route, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if err = r.Complete(now); err != nil {
		return nil, err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, r.CourierID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing to release
	case err != nil:
		return nil, err
	default:
		c.FinishRoute()
		if err = courierRepo.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	uow.Record(events.RouteCompleted{RouteID: r.ID().String(), CourierID: r.CourierID().String(), At: now})

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
