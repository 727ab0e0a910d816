package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies manual status changes. Delivery goes
// through ConfirmDeliveryCommandHandler instead.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        Clock
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, now Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		now:        clockOrSystem(now),
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (*order.Order, error) {
		return h.handle(ctx, cmd)
	})
}

func (h *ChangeOrderStatusCommandHandler) handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	now := h.now()
	if err = o.ChangeStatus(cmd.Status(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	uow.Record(events.OrderStatusChanged{
		OrderID: o.ID().String(),
		From:    from.String(),
		To:      o.Status().String(),
		At:      now,
	})

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
