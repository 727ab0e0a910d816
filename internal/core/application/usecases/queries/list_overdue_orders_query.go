package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListOverdueOrdersQueryIsNotConstructed = errors.New(
	"ListOverdueOrdersQuery must be created via NewListOverdueOrdersQuery constructor",
)

// ListOverdueOrdersQuery selects active orders whose expected delivery is before now.
type ListOverdueOrdersQuery struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewListOverdueOrdersQuery(now time.Time) ListOverdueOrdersQuery {
	return ListOverdueOrdersQuery{now: now.UTC(), guard: guard.NewConstructorGuard()}
}

func (q ListOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueOrdersQueryIsNotConstructed)
}

func (q ListOverdueOrdersQuery) Now() time.Time {
	return q.now
}

// ListOverdueOrdersQueryHandler returns the most late orders first.
type ListOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOverdueOrdersQueryHandler(db *gorm.DB) ListOverdueOrdersQueryHandler {
	return ListOverdueOrdersQueryHandler{db: db}
}

func (h ListOverdueOrdersQueryHandler) Handle(ctx context.Context, query ListOverdueOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := order.ActiveStatuses()
	statuses := make([]string, 0, len(active))
	for _, s := range active {
		statuses = append(statuses, s.String())
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Raw(`SELECT `+orderColumns+`
			FROM orders
			WHERE status IN ? AND expected_delivery_at < ?
			ORDER BY expected_delivery_at`, statuses, query.Now()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return orderViews(rows), nil
}
