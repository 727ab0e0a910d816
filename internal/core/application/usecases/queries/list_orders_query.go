package queries

import (
	"errors"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

const (
	// DefaultOrdersLimit applies when the caller gives no limit.
	DefaultOrdersLimit = 50
	MaxOrdersLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// ListOrdersQuery filters orders; every filter is optional.
//
// Example:
//
//	storeID := principal.ScopeStoreID(requested)
//	query, err := NewListOrdersQuery("pending", storeID, nil, nil, 0)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status    *order.Status
	storeID   *kernel.UUID
	courierID *kernel.UUID
	day       *time.Time
	limit     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filters. An empty status means any status,
// day selects orders created on that UTC day and limit 0 means DefaultOrdersLimit.
func NewListOrdersQuery(
	status string,
	storeID, courierID *kernel.UUID,
	day *time.Time,
	limit int,
) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		storeID:   storeID,
		courierID: courierID,
		day:       day,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}

	var statusErr error
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			statusErr = err
		} else {
			q.status = &parsed
		}
	}

	var limitErr error
	switch {
	case limit == 0:
		q.limit = DefaultOrdersLimit
	case limit < 0 || limit > MaxOrdersLimit:
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersLimit)
	}

	if err := errors.Join(statusErr, limitErr); err != nil {
		return ListOrdersQuery{}, err
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) StoreID() *kernel.UUID {
	return q.storeID
}

func (q ListOrdersQuery) CourierID() *kernel.UUID {
	return q.courierID
}

func (q ListOrdersQuery) Day() *time.Time {
	return q.day
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}
