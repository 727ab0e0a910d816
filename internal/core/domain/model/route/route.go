package route

import (
	"errors"
	"fmt"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
)

var (
	ErrOrdersAreRequired     = errs.NewValueIsRequiredError("order_ids")
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// Links are the external navigation URLs handed to the courier.
type Links struct {
	GoogleMaps string
	Waze       string
}

// Route groups pending orders under one courier, in the order the stops were given.
//
// Invariants:
//   - at least one order, no order listed twice
//   - total fee is the per-stop fee times the number of orders
//   - completed routes never change again
type Route struct {
	id          kernel.UUID
	courierID   kernel.UUID
	orderIDs    []kernel.UUID
	links       Links
	totalFee    kernel.Money
	status      Status
	startedAt   *time.Time
	completedAt *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewRoute creates a pending route.
//
// Parameters:
//   - id: Route identifier
//   - courierID: Courier that will drive the route
//   - orderIDs: Stops in delivery order
//   - links: Navigation links built from the stop addresses
//   - feePerStop: Flat fee charged per order
//   - now: Creation time
func NewRoute(
	id, courierID kernel.UUID,
	orderIDs []kernel.UUID,
	links Links,
	feePerStop kernel.Money,
	now time.Time,
) (*Route, error) {
	r := &Route{
		links:         links,
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setCourierID(courierID),
		r.setOrderIDs(orderIDs),
	); err != nil {
		return nil, err
	}

	r.totalFee = feePerStop.Times(len(r.orderIDs))
	return r, nil
}

// State is the persisted representation used by RestoreRoute.
type State struct {
	ID          kernel.UUID
	CourierID   kernel.UUID
	OrderIDs    []kernel.UUID
	Links       Links
	TotalFee    kernel.Money
	Status      Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// RestoreRoute rebuilds a route loaded from persistence.
func RestoreRoute(s State) (*Route, error) {
	r := &Route{
		links:         s.Links,
		totalFee:      s.TotalFee,
		startedAt:     s.StartedAt,
		completedAt:   s.CompletedAt,
		createdAt:     s.CreatedAt,
		isConstructed: true,
	}

	status, statusErr := ParseStatus(string(s.Status))
	if err := errors.Join(
		r.setID(s.ID),
		r.setCourierID(s.CourierID),
		r.setOrderIDs(s.OrderIDs),
		statusErr,
	); err != nil {
		return nil, err
	}
	r.status = status
	return r, nil
}

func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) ID() kernel.UUID {
	return r.id
}

func (r *Route) CourierID() kernel.UUID {
	return r.courierID
}

// OrderIDs returns a copy of the stops in delivery order.
func (r *Route) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), r.orderIDs...)
}

func (r *Route) OrderCount() int {
	return len(r.orderIDs)
}

func (r *Route) Links() Links {
	return r.links
}

func (r *Route) TotalFee() kernel.Money {
	return r.totalFee
}

func (r *Route) Status() Status {
	return r.status
}

func (r *Route) StartedAt() *time.Time {
	return r.startedAt
}

func (r *Route) CompletedAt() *time.Time {
	return r.completedAt
}

func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

// Start moves a pending route to in_progress.
func (r *Route) Start(now time.Time) error {
	if r.status != Pending {
		return errs.NewConflictError("route", fmt.Sprintf("is %s, expected pending", r.status))
	}
	ts := now.UTC()
	r.status = InProgress
	r.startedAt = &ts
	return nil
}

// Complete closes a pending or in-progress route.
func (r *Route) Complete(now time.Time) error {
	if r.status == Completed {
		return errs.NewConflictError("route", "is already completed")
	}
	ts := now.UTC()
	r.status = Completed
	r.completedAt = &ts
	return nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier_id", err)
	}
	r.courierID = id
	return nil
}

func (r *Route) setOrderIDs(ids []kernel.UUID) error {
	if err := ValidateOrderIDs(ids); err != nil {
		return err
	}
	r.orderIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

// ValidateOrderIDs requires at least one valid id and no id listed twice.
func ValidateOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrOrdersAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order_ids", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("order_ids", fmt.Errorf("order %s is listed twice", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
