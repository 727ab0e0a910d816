package commands

import (
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerAddressIsRequired = errs.NewValueIsRequiredError("customer_address")
	ErrStoreIDIsRequired         = errs.NewValueIsRequiredError("store_id")
)

// CreateOrderCommand represents a store registering a new delivery order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), storeID,
//	    order.Customer{Name: "Ana", Address: "Rua A, 123"},
//	    order.Details{PreparationMinutes: 10})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	fmt.Printf("order %s, code %s", created.ID(), created.Code())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	storeID  kernel.UUID
	customer order.Customer
	details  order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and the customer address.
func NewCreateOrderCommand(
	orderID, storeID kernel.UUID,
	customer order.Customer,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}

	var addressErr error
	if customer.Address == "" {
		addressErr = ErrCustomerAddressIsRequired
	}
	var storeErr error
	if storeID.Validate() != nil {
		storeErr = ErrStoreIDIsRequired
	}

	if err := errors.Join(orderID.Validate(), storeErr, addressErr); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.storeID = storeID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}
