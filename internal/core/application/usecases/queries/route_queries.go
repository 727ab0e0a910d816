package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListRoutesQueryIsNotConstructed = errors.New("ListRoutesQuery must be created via NewListRoutesQuery constructor")
	ErrGetRouteQueryIsNotConstructed   = errors.New("GetRouteQuery must be created via NewGetRouteQuery constructor")
)

type routeRow struct {
	ID             uuid.UUID
	CourierID      uuid.UUID
	OrderIDs       pq.StringArray `gorm:"column:order_ids;type:text"`
	OrderCount     int
	GoogleMapsLink string
	WazeLink       string
	TotalFee       decimal.Decimal
	Status         string
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

func (r routeRow) view() (RouteView, error) {
	ids := make([]uuid.UUID, 0, len(r.OrderIDs))
	for _, raw := range r.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return RouteView{}, err
		}
		ids = append(ids, id)
	}
	return RouteView{
		ID:             r.ID,
		CourierID:      r.CourierID,
		OrderIDs:       ids,
		OrderCount:     r.OrderCount,
		GoogleMapsLink: r.GoogleMapsLink,
		WazeLink:       r.WazeLink,
		TotalFee:       moneyString(r.TotalFee),
		Status:         r.Status,
		StartedAt:      r.StartedAt,
		CompletedAt:    r.CompletedAt,
		CreatedAt:      r.CreatedAt.UTC(),
	}, nil
}

type ListRoutesQuery struct {
	status    *route.Status
	courierID *kernel.UUID
	guard     guard.ConstructorGuard
}

func NewListRoutesQuery(status string, courierID *kernel.UUID) (ListRoutesQuery, error) {
	q := ListRoutesQuery{courierID: courierID, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := route.ParseStatus(status)
		if err != nil {
			return ListRoutesQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListRoutesQuery) Validate() error {
	return q.guard.Validate(ErrListRoutesQueryIsNotConstructed)
}

// ListRoutesQueryHandler lists routes newest first.
type ListRoutesQueryHandler struct {
	db *gorm.DB
}

func NewListRoutesQueryHandler(db *gorm.DB) ListRoutesQueryHandler {
	return ListRoutesQueryHandler{db: db}
}

func (h ListRoutesQueryHandler) Handle(ctx context.Context, query ListRoutesQuery) ([]RouteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("routes")
	if query.status != nil {
		tx = tx.Where("status = ?", string(*query.status))
	}
	if query.courierID != nil {
		tx = tx.Where("courier_id = ?", query.courierID.Bytes())
	}

	var rows []routeRow
	if err := tx.Order("created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	routes := make([]RouteView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return nil, err
		}
		routes = append(routes, v)
	}
	return routes, nil
}

type GetRouteQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetRouteQuery(id kernel.UUID) (GetRouteQuery, error) {
	if err := id.Validate(); err != nil {
		return GetRouteQuery{}, err
	}
	return GetRouteQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

type GetRouteQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (RouteView, error) {
	if err := query.Validate(); err != nil {
		return RouteView{}, err
	}

	var rows []routeRow
	err := h.db.WithContext(ctx).Table("routes").Where("id = ?", query.id.Bytes()).Scan(&rows).Error
	if err != nil {
		return RouteView{}, err
	}
	if len(rows) == 0 {
		return RouteView{}, errs.NewObjectNotFoundError("route", query.id.String())
	}
	return rows[0].view()
}
