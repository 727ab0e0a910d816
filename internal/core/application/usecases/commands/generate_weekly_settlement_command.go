package commands

import (
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/pkg/guard"
)

var ErrGenerateWeeklySettlementCommandIsNotConstructed = errors.New(
	"GenerateWeeklySettlementCommand must be created via NewGenerateWeeklySettlementCommand constructor",
)

// GenerateWeeklySettlementCommand asks for a store_to_platform settlement over an
// inclusive period of UTC days.
type GenerateWeeklySettlementCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	storeID   kernel.UUID
	period    payment.Period

	guard guard.ConstructorGuard
}

func NewGenerateWeeklySettlementCommand(
	paymentID, storeID kernel.UUID,
	period payment.Period,
) (GenerateWeeklySettlementCommand, error) {
	var storeErr error
	if storeID.Validate() != nil {
		storeErr = ErrStoreIDIsRequired
	}
	var periodErr error
	if period.Start().IsZero() {
		periodErr = payment.ErrPeriodIsRequired
	}

	if err := errors.Join(paymentID.Validate(), storeErr, periodErr); err != nil {
		return GenerateWeeklySettlementCommand{}, err
	}

	return GenerateWeeklySettlementCommand{
		paymentID: paymentID,
		storeID:   storeID,
		period:    period,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateWeeklySettlementCommand) Validate() error {
	return c.guard.Validate(ErrGenerateWeeklySettlementCommandIsNotConstructed)
}

func (c GenerateWeeklySettlementCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c GenerateWeeklySettlementCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c GenerateWeeklySettlementCommand) Period() payment.Period {
	return c.period
}
