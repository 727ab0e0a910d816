package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
)

const (
	// DefaultPreparationMinutes is used when a draft carries no preparation time.
	DefaultPreparationMinutes = 20

	// MaxPreparationMinutes bounds the preparation time to one day.
	MaxPreparationMinutes = 24 * 60

	// DeliveryBuffer is added to the preparation time to compute the expected delivery.
	DeliveryBuffer = 20 * time.Minute

	// DefaultOrigin marks orders typed in by a store operator.
	DefaultOrigin = "manual"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidConfirmationCode is returned when the code entered on delivery does not match.
	ErrInvalidConfirmationCode = errs.NewValueIsInvalidErrorWithCause("code", errors.New("confirmation code does not match"))

	// ErrAlreadyConfirmed is returned when a delivery is confirmed a second time.
	ErrAlreadyConfirmed = errs.NewConflictError("order", "is already confirmed")
)

// Customer holds the delivery recipient. Address is the only mandatory field.
type Customer struct {
	Name         string
	Phone        string
	Address      string
	Neighborhood string
	City         string
	PostalCode   string
	Complement   string
}

// Details holds the commercial data of an order typed in by the store.
type Details struct {
	Items              string
	OrderValue         *kernel.Money
	PaymentMethod      string
	ChangeFor          *kernel.Money
	Notes              string
	Origin             string
	PreparationMinutes int
}

// Order is the aggregate root of the delivery lifecycle. It owns the confirmation
// code, the status machine and the timestamps stamped on each transition.
//
// Order follows these invariants:
//   - Must belong to a store and have a non-empty customer address
//   - The confirmation code is set on creation and never changes
//   - Delivered is reached only by confirming the code, and only once
//   - Delivered and Cancelled orders never change status again
type Order struct {
	id        kernel.UUID
	storeID   kernel.UUID
	courierID *kernel.UUID

	customer Customer
	details  Details

	platformFee        kernel.Money
	code               ConfirmationCode
	expectedDeliveryAt time.Time
	status             Status

	acceptedAt  *time.Time
	collectedAt *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	confirmedAt *time.Time
	createdAt   time.Time

	// version is the optimistic concurrency token loaded from persistence.
	version int64

	isConstructed bool
}

// NewOrder creates a pending order.
//
// Parameters:
//   - id: Unique identifier for the order
//   - storeID: Store that originates the order
//   - customer: Delivery recipient, Address is required
//   - details: Items, values and preparation time (0 means DefaultPreparationMinutes)
//   - fee: Flat platform fee charged for the delivery
//   - code: Confirmation code generated for this order
//   - now: Creation time
//
// Returns:
//   - *Order: The created order in Pending status
//   - error: Joined validation errors for every invalid parameter
//
// Example:
//
//	code, _ := codes.Generate()
//	o, err := order.NewOrder(kernel.NewUUID(), storeID,
//	    order.Customer{Address: "Rua A, 123"},
//	    order.Details{PreparationMinutes: 10},
//	    kernel.DefaultPlatformFee, code, time.Now())
//
// The expected delivery is now + preparation minutes + DeliveryBuffer.
func NewOrder(
	id, storeID kernel.UUID,
	customer Customer,
	details Details,
	fee kernel.Money,
	code ConfirmationCode,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		platformFee:   fee,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setCustomer(customer),
		o.setDetails(details),
		o.setCode(code),
	); err != nil {
		return nil, err
	}

	o.expectedDeliveryAt = o.createdAt.
		Add(time.Duration(o.details.PreparationMinutes) * time.Minute).
		Add(DeliveryBuffer)

	return o, nil
}

// State is the full persisted representation used to restore an Order.
type State struct {
	ID                 kernel.UUID
	StoreID            kernel.UUID
	CourierID          *kernel.UUID
	Customer           Customer
	Details            Details
	PlatformFee        kernel.Money
	Code               ConfirmationCode
	ExpectedDeliveryAt time.Time
	Status             Status
	AcceptedAt         *time.Time
	CollectedAt        *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time
	CreatedAt          time.Time
	Version            int64
}

// RestoreOrder rebuilds an order loaded from persistence. It validates identity,
// code and status but not creation-time defaults.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		courierID:          s.CourierID,
		customer:           s.Customer,
		details:            s.Details,
		platformFee:        s.PlatformFee,
		expectedDeliveryAt: s.ExpectedDeliveryAt,
		acceptedAt:         s.AcceptedAt,
		collectedAt:        s.CollectedAt,
		deliveredAt:        s.DeliveredAt,
		cancelledAt:        s.CancelledAt,
		confirmedAt:        s.ConfirmedAt,
		createdAt:          s.CreatedAt,
		version:            s.Version,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setStoreID(s.StoreID),
		o.setCode(s.Code),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) PlatformFee() kernel.Money {
	return o.platformFee
}

func (o *Order) Code() ConfirmationCode {
	return o.code
}

func (o *Order) ExpectedDeliveryAt() time.Time {
	return o.expectedDeliveryAt
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

func (o *Order) CollectedAt() *time.Time {
	return o.collectedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Version() int64 {
	return o.version
}

func (o *Order) IsConfirmed() bool {
	return o.confirmedAt != nil
}

func (o *Order) State() State {
	return o.state()
}

// ChangeStatus applies a manual status change and stamps the matching timestamp.
//
// This method enforces the following business rules:
//   - target must be one of the allowed statuses (ValueIsInvalidError)
//   - Delivered and Cancelled orders cannot change (ConflictError)
//   - Delivered can only be reached through Confirm (ConflictError)
//
// Example:
//
//	if err := o.ChangeStatus(order.Collected, time.Now()); err != nil {
//	    return err
//	}

func (o *Order) ChangeStatus(target Status, now time.Time) error {
	newStatus, err := o.status.ChangeTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.stamp(newStatus, now.UTC())
	return nil
}

// AssignToRoute accepts a pending order for the given courier.
func (o *Order) AssignToRoute(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.stamp(newStatus, now.UTC())
	return nil
}

// Confirm marks the order delivered when code matches.
//
// Checks run in this order:
//   - the code must match (ErrInvalidConfirmationCode)
//   - the order must not be confirmed yet (ErrAlreadyConfirmed)
//   - the order must not be cancelled (ConflictError)
//
// A failed check leaves the order untouched.
func (o *Order) Confirm(code string, now time.Time) error {
	if !o.code.Matches(code) {
		return ErrInvalidConfirmationCode
	}
	if o.IsConfirmed() {
		return ErrAlreadyConfirmed
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	ts := now.UTC()
	o.status = newStatus
	o.confirmedAt = &ts
	o.stamp(newStatus, ts)
	return nil
}

// IsOverdue reports whether an active order passed its expected delivery time.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.status.IsActive() && o.expectedDeliveryAt.Before(now)
}

func (o *Order) stamp(status Status, ts time.Time) {
	switch status { //nolint:exhaustive // statuses without a timestamp are ignored
	case Accepted:
		o.acceptedAt = &ts
	case Collected:
		o.collectedAt = &ts
	case Delivered:
		o.deliveredAt = &ts
	case Cancelled:
		o.cancelledAt = &ts
	}
}

func (o *Order) state() State {
	return State{
		ID:                 o.id,
		StoreID:            o.storeID,
		CourierID:          o.courierID,
		Customer:           o.customer,
		Details:            o.details,
		PlatformFee:        o.platformFee,
		Code:               o.code,
		ExpectedDeliveryAt: o.expectedDeliveryAt,
		Status:             o.status,
		AcceptedAt:         o.acceptedAt,
		CollectedAt:        o.collectedAt,
		DeliveredAt:        o.deliveredAt,
		CancelledAt:        o.cancelledAt,
		ConfirmedAt:        o.confirmedAt,
		CreatedAt:          o.createdAt,
		Version:            o.version,
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("store_id", err)
	}
	o.storeID = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		return errs.NewValueIsRequiredError("customer_address")
	}
	o.customer = c
	return nil
}

func (o *Order) setDetails(d Details) error {
	if d.PreparationMinutes < 0 || d.PreparationMinutes > MaxPreparationMinutes {
		return errs.NewValueIsOutOfRangeError("preparation_minutes", d.PreparationMinutes, 0, MaxPreparationMinutes)
	}
	if d.PreparationMinutes == 0 {
		d.PreparationMinutes = DefaultPreparationMinutes
	}
	if d.Origin == "" {
		d.Origin = DefaultOrigin
	}
	o.details = d
	return nil
}

func (o *Order) setCode(code ConfirmationCode) error {
	if code.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("confirmation_code", fmt.Errorf("order %s has no code", o.id))
	}
	o.code = code
	return nil
}
