package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/payment"
)

type MarkPaymentPaidCommandHandler struct {
	uowFactory PaymentUoWFactory
	now        Clock
}

func NewMarkPaymentPaidCommandHandler(uowFactory PaymentUoWFactory, now Clock) MarkPaymentPaidCommandHandler {
	return MarkPaymentPaidCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

// Handle moves the payment from pending to paid. A paid payment yields errs.ErrConflict.
func (h *MarkPaymentPaidCommandHandler) Handle(ctx context.Context, cmd MarkPaymentPaidCommand) (*payment.Payment, error) {
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

	repo := uow.PaymentRepository()
	p, err := repo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if err = p.MarkPaid(cmd.Method(), cmd.ReceiptRef(), now); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uow.Record(events.PaymentPaid{PaymentID: p.ID().String(), Method: p.Method(), At: now})

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
