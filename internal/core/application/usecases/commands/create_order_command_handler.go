package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
)

// ConfirmationCodeGenerator produces the delivery code of a new order.
type ConfirmationCodeGenerator interface {
	Generate() (order.ConfirmationCode, error)
}

// CreateOrderCommandHandler creates pending orders with a fresh confirmation code
// and the configured platform fee.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	codes       ConfirmationCodeGenerator
	platformFee kernel.Money
	now         Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// A zero platformFee falls back to kernel.DefaultPlatformFee.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	codes ConfirmationCodeGenerator,
	platformFee kernel.Money,
	now Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		codes:       codes,
		platformFee: platformFee.OrDefault(kernel.DefaultPlatformFee),
		now:         clockOrSystem(now),
	}
}

// Handle persists the order and returns it with its confirmation code.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	code, err := h.codes.Generate()
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		cmd.OrderID(), cmd.StoreID(), cmd.Customer(), cmd.Details(), h.platformFee, code, h.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	uow.Record(events.OrderCreated{
		OrderID:            created.ID().String(),
		StoreID:            created.StoreID().String(),
		ExpectedDeliveryAt: created.ExpectedDeliveryAt(),
		At:                 created.CreatedAt(),
	})

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
