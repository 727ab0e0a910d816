package order

import (
	"fmt"

	"montarota/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> Collected ──> OnRoute ──> Delivered
//	   │           │             │            │
//	   └───────────┴──────┬──────┴────────────┘
//	                      v
//	             Cancelled / Problem
//
// Delivered and Cancelled are terminal. Delivered is reached only through
// delivery confirmation with the order's code.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order waits to be put on a route.
	Pending

	// Accepted indicates the order was assembled into a route for a courier.
	Accepted

	// Collected indicates the courier picked the order up at the store.
	Collected

	// OnRoute indicates the courier is heading to the customer.
	OnRoute

	// Delivered indicates the customer confirmed the delivery code.
	Delivered

	// Cancelled is a terminal state reachable from any non-delivered state.
	Cancelled

	// Problem flags an order needing operator attention.
	Problem
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		Collected: "collected",
		OnRoute:   "on_route",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Problem:   "problem",
	}
}

// ParseStatus converts the wire representation ("pending", "on_route", ...) into a Status.
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError when s is not one of the allowed statuses
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// ActiveStatuses are the statuses an order can be overdue in.
func ActiveStatuses() []Status {
	return []Status{Pending, Accepted, Collected, OnRoute}
}

// Validate checks if the Status value is one of the allowed statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Problem {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further status change is allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order still awaits delivery.
func (s Status) IsActive() bool {
	switch s { //nolint:exhaustive // only active statuses are listed
	case Pending, Accepted, Collected, OnRoute:
		return true
	default:
		return false
	}
}

// ChangeTo validates a manual status change from s to target.
//
// Rules:
//   - target must be a valid status
//   - terminal statuses cannot change
//   - Delivered is reserved for code confirmation
func (s Status) ChangeTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewConflictError("order", fmt.Sprintf("is %s and cannot change status", s))
	}
	if target == Delivered {
		return Unknown, errs.NewConflictError("order", "can only be delivered through code confirmation")
	}
	return target, nil
}

// Accept transitions a pending order to Accepted when it is assembled into a route.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewConflictError("order", fmt.Sprintf("is %s, expected pending", s))
	}
	return Accepted, nil
}

// Deliver transitions a non-cancelled order to Delivered.
func (s Status) Deliver() (Status, error) {
	if s == Cancelled {
		return Unknown, errs.NewConflictError("order", "is cancelled and cannot be delivered")
	}
	return Delivered, nil
}
