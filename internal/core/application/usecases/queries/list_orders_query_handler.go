package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(orderColumns)
	if status := query.Status(); status != nil {
		tx = tx.Where("status = ?", status.String())
	}
	if storeID := query.StoreID(); storeID != nil {
		tx = tx.Where("store_id = ?", storeID.Bytes())
	}
	if courierID := query.CourierID(); courierID != nil {
		tx = tx.Where("courier_id = ?", courierID.Bytes())
	}
	if day := query.Day(); day != nil {
		from, until := dayWindow(*day)
		tx = tx.Where("created_at >= ? AND created_at < ?", from, until)
	}

	var rows []orderRow
	if err := tx.Order("created_at DESC").Limit(query.Limit()).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return orderViews(rows), nil
}
