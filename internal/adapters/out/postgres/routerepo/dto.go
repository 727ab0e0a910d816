// Package routerepo persists routes. Stops are stored as an ordered array of
// order ids.
package routerepo

import (
	"database/sql/driver"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// OrderIDList keeps stop order. It is a native text[] on PostgreSQL and an
// array literal in a text column elsewhere.
type OrderIDList pq.StringArray

func (l OrderIDList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *OrderIDList) Scan(src any) error {
	return (*pq.StringArray)(l).Scan(src)
}

func (OrderIDList) GormDataType() string {
	return "text"
}

func (OrderIDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type RouteDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderIDs       OrderIDList     `gorm:"not null"`
	OrderCount     int             `gorm:"not null"`
	GoogleMapsLink string          `gorm:"type:text"`
	WazeLink       string          `gorm:"type:text"`
	TotalFee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status         string          `gorm:"type:varchar(16);not null;index"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"index"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	ids := r.OrderIDs()
	raw := make(OrderIDList, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	return RouteDTO{
		ID:             r.ID().Bytes(),
		CourierID:      r.CourierID().Bytes(),
		OrderIDs:       raw,
		OrderCount:     r.OrderCount(),
		GoogleMapsLink: r.Links().GoogleMaps,
		WazeLink:       r.Links().Waze,
		TotalFee:       r.TotalFee().Decimal(),
		Status:         string(r.Status()),
		StartedAt:      r.StartedAt(),
		CompletedAt:    r.CompletedAt(),
		CreatedAt:      r.CreatedAt(),
	}
}

// ToDomain rebuilds a route from its row. Queries reuse it for list results.
func ToDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		orderIDs = append(orderIDs, orderID)
	}
	fee, err := kernel.NewMoney(dto.TotalFee)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(route.State{
		ID:          id,
		CourierID:   courierID,
		OrderIDs:    orderIDs,
		Links:       route.Links{GoogleMaps: dto.GoogleMapsLink, Waze: dto.WazeLink},
		TotalFee:    fee,
		Status:      route.Status(dto.Status),
		StartedAt:   dto.StartedAt,
		CompletedAt: dto.CompletedAt,
		CreatedAt:   dto.CreatedAt,
	})
}
