package commands

import (
	"context"
	"errors"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/errs"
)

// ConfirmDeliveryResult is the delivered order and, when one was assigned, the
// credited courier.
type ConfirmDeliveryResult struct {
	Order   *order.Order
	Courier *courier.Courier
}

// ConfirmDeliveryCommandHandler validates the confirmation code and delivers the order.
//
// The order update and the courier credit are written in one transaction, each
// conditional on the version it was read with. When another transaction wins the
// race the whole operation re-runs on fresh state, so a courier is credited exactly
// once per order and concurrent confirmations for the same courier never lose an
// increment.
//
// Example:
//
//	cmd, _ := NewConfirmDeliveryCommand(orderID, "482913")
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidConfirmationCode):
//	    // wrong code, nothing changed
//	case errors.Is(err, order.ErrAlreadyConfirmed):
//	    // second confirmation, courier not credited again
//	}
type ConfirmDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	fallbackFee kernel.Money
	now         Clock
}

// NewConfirmDeliveryCommandHandler creates the handler. fallbackFee is credited for
// orders stored without a fee.
func NewConfirmDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	fallbackFee kernel.Money,
	now Clock,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:  uowFactory,
		fallbackFee: fallbackFee.OrDefault(kernel.DefaultPlatformFee),
		now:         clockOrSystem(now),
	}
}

// Handle fails with errs.ErrObjectNotFound, order.ErrInvalidConfirmationCode or
// order.ErrAlreadyConfirmed, checked in that order.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (ConfirmDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (ConfirmDeliveryResult, error) {
		return h.handle(ctx, cmd)
	})
}

func (h *ConfirmDeliveryCommandHandler) handle(ctx context.Context, cmd ConfirmDeliveryCommand) (ConfirmDeliveryResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	now := h.now()
	if err = o.Confirm(cmd.Code(), now); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	fee := o.PlatformFee().OrDefault(h.fallbackFee)
	result := ConfirmDeliveryResult{Order: o}

	if courierID := o.Courier(); courierID != nil {
		courierRepo := uow.CourierRepository()
		c, getErr := courierRepo.Get(ctx, *courierID)
		switch {
		case errors.Is(getErr, errs.ErrObjectNotFound):
			// courier record removed after assignment: deliver without credit
		case getErr != nil:
			return ConfirmDeliveryResult{}, getErr
		default:
			c.CreditDelivery(fee)
			if err = courierRepo.Update(ctx, c); err != nil {
				return ConfirmDeliveryResult{}, err
			}
			result.Courier = c
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	var courierRef *string
	if id := o.Courier(); id != nil {
		s := id.String()
		courierRef = &s
	}
	uow.Record(events.DeliveryConfirmed{
		OrderID:   o.ID().String(),
		StoreID:   o.StoreID().String(),
		CourierID: courierRef,
		Fee:       fee.String(),
		At:        now,
	})

	if err = uow.Commit(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	return result, nil
}
