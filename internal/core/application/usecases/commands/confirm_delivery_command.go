package commands

import (
	"errors"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
)

// ConfirmDeliveryCommand carries the code a customer read out to the courier.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(orderID kernel.UUID, code string) (ConfirmDeliveryCommand, error) {
	code = strings.TrimSpace(code)

	var codeErr error
	if code == "" {
		codeErr = ErrCodeIsRequired
	}
	if err := errors.Join(orderID.Validate(), codeErr); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		orderID: orderID,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmDeliveryCommand) Code() string {
	return c.code
}
