package commands

import (
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand is a manual status change requested by an operator.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand parses status; values outside the allowed set are rejected.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status string) (ChangeOrderStatusCommand, error) {
	parsed, statusErr := order.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  parsed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}
