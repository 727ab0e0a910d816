package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
)

// FeeTotaler sums order fees, substituting a default for zero fees.
type FeeTotaler interface {
	Total(fees []kernel.Money) (count int, total kernel.Money)
}

// SettlementResult carries the stored payment and its human readable summary.
type SettlementResult struct {
	Payment *payment.Payment
	Message string
}

// GenerateWeeklySettlementCommandHandler totals the platform fees of a store's
// delivered orders created within the period and stores a pending payment.
// A period without deliveries still produces a zero settlement.
type GenerateWeeklySettlementCommandHandler struct {
	uowFactory SettlementUoWFactory
	totaler    FeeTotaler
	now        Clock
}

func NewGenerateWeeklySettlementCommandHandler(
	uowFactory SettlementUoWFactory,
	totaler FeeTotaler,
	now Clock,
) GenerateWeeklySettlementCommandHandler {
	return GenerateWeeklySettlementCommandHandler{
		uowFactory: uowFactory,
		totaler:    totaler,
		now:        clockOrSystem(now),
	}
}

func (h *GenerateWeeklySettlementCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateWeeklySettlementCommand,
) (SettlementResult, error) {
	if err := cmd.Validate(); err != nil {
		return SettlementResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SettlementResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.StoreRepository().Get(ctx, cmd.StoreID())
	if err != nil {
		return SettlementResult{}, err
	}

	period := cmd.Period()
	orders, err := uow.OrderRepository().ListDeliveredForStore(ctx, s.ID(), period.Start(), period.Until())
	if err != nil {
		return SettlementResult{}, err
	}

	fees := make([]kernel.Money, 0, len(orders))
	for _, o := range orders {
		fees = append(fees, o.PlatformFee())
	}
	count, gross := h.totaler.Total(fees)

	now := h.now()
	p, err := payment.NewStoreSettlement(cmd.PaymentID(), s.ID(), period, count, gross, now)
	if err != nil {
		return SettlementResult{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return SettlementResult{}, err
	}

	uow.Record(events.SettlementGenerated{
		PaymentID:     p.ID().String(),
		StoreID:       s.ID().String(),
		DeliveryCount: count,
		Gross:         gross.String(),
		At:            now,
	})

	if err = uow.Commit(ctx); err != nil {
		return SettlementResult{}, err
	}

	return SettlementResult{Payment: p, Message: p.Summary()}, nil
}
