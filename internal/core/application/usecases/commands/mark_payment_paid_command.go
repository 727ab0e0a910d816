package commands

import (
	"errors"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/guard"
)

var ErrMarkPaymentPaidCommandIsNotConstructed = errors.New(
	"MarkPaymentPaidCommand must be created via NewMarkPaymentPaidCommand constructor",
)

type MarkPaymentPaidCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	method     string
	receiptRef string

	guard guard.ConstructorGuard
}

// NewMarkPaymentPaidCommand builds the command; method and receipt are optional.
func NewMarkPaymentPaidCommand(paymentID kernel.UUID, method, receiptRef string) (MarkPaymentPaidCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return MarkPaymentPaidCommand{}, err
	}

	return MarkPaymentPaidCommand{
		paymentID:  paymentID,
		method:     strings.TrimSpace(method),
		receiptRef: strings.TrimSpace(receiptRef),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkPaymentPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaymentPaidCommandIsNotConstructed)
}

func (c MarkPaymentPaidCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

func (c MarkPaymentPaidCommand) Method() string {
	return c.method
}

func (c MarkPaymentPaidCommand) ReceiptRef() string {
	return c.receiptRef
}
