// Package payment provides the Payment aggregate: a settlement record that
// aggregates the platform fees of a store's delivered orders over a period.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewStoreSettlement constructor")

// Type tells who owes whom.
type Type string

const StoreToPlatform Type = "store_to_platform"

// Status of a settlement: pending -> paid.
type Status string

const (
	Pending Status = "pending"
	Paid    Status = "paid"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Paid:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid payment status", s))
	}
}

// Payment is a settlement between a store and the platform. Net equals gross as no
// deductions are modeled.
type Payment struct {
	id            kernel.UUID
	kind          Type
	storeID       kernel.UUID
	courierID     *kernel.UUID
	period        Period
	deliveryCount int
	gross         kernel.Money
	net           kernel.Money
	status        Status
	method        string
	receiptRef    string
	paidAt        *time.Time
	createdAt     time.Time
	isConstructed bool
}

// NewStoreSettlement creates a pending store_to_platform payment.
func NewStoreSettlement(
	id, storeID kernel.UUID,
	period Period,
	deliveryCount int,
	gross kernel.Money,
	now time.Time,
) (*Payment, error) {
	p := &Payment{
		kind:          StoreToPlatform,
		period:        period,
		gross:         gross,
		net:           gross,
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	var countErr error
	if deliveryCount < 0 {
		countErr = errs.NewValueIsInvalidErrorWithCause("delivery_count", fmt.Errorf("%d is negative", deliveryCount))
	}
	var periodErr error
	if period.Start().IsZero() {
		periodErr = ErrPeriodIsRequired
	}

	if err := errors.Join(p.setID(id), p.setStoreID(storeID), countErr, periodErr); err != nil {
		return nil, err
	}
	p.deliveryCount = deliveryCount
	return p, nil
}

// State is the persisted representation used by RestorePayment.
type State struct {
	ID            kernel.UUID
	Type          Type
	StoreID       kernel.UUID
	CourierID     *kernel.UUID
	Period        Period
	DeliveryCount int
	Gross         kernel.Money
	Net           kernel.Money
	Status        Status
	Method        string
	ReceiptRef    string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

func RestorePayment(s State) (*Payment, error) {
	status, statusErr := ParseStatus(string(s.Status))
	p := &Payment{
		kind:          s.Type,
		courierID:     s.CourierID,
		period:        s.Period,
		deliveryCount: s.DeliveryCount,
		gross:         s.Gross,
		net:           s.Net,
		status:        status,
		method:        s.Method,
		receiptRef:    s.ReceiptRef,
		paidAt:        s.PaidAt,
		createdAt:     s.CreatedAt,
		isConstructed: true,
	}
	if err := errors.Join(p.setID(s.ID), p.setStoreID(s.StoreID), statusErr); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) Type() Type {
	return p.kind
}

func (p *Payment) StoreID() kernel.UUID {
	return p.storeID
}

func (p *Payment) CourierID() *kernel.UUID {
	return p.courierID
}

func (p *Payment) Period() Period {
	return p.period
}

func (p *Payment) DeliveryCount() int {
	return p.deliveryCount
}

func (p *Payment) Gross() kernel.Money {
	return p.gross
}

func (p *Payment) Net() kernel.Money {
	return p.net
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) Method() string {
	return p.method
}

func (p *Payment) ReceiptRef() string {
	return p.receiptRef
}

func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// Summary is the human-readable total, e.g. "12 deliveries = R$ 54.00".
func (p *Payment) Summary() string {
	return fmt.Sprintf("%d deliveries = R$ %s", p.deliveryCount, p.gross)
}

// MarkPaid records how the settlement was paid. Paying twice is a conflict.
func (p *Payment) MarkPaid(method, receiptRef string, now time.Time) error {
	if p.status == Paid {
		return errs.NewConflictError("payment", "is already paid")
	}
	ts := now.UTC()
	p.status = Paid
	p.method = strings.TrimSpace(method)
	p.receiptRef = strings.TrimSpace(receiptRef)
	p.paidAt = &ts
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("store_id", err)
	}
	p.storeID = id
	return nil
}
