// Package trackingrepo stores the append-only GPS ping history.
package trackingrepo

import (
	"context"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index:idx_gps_pings_courier_created,priority:1"`
	Lat       float64   `gorm:"not null"`
	Lng       float64   `gorm:"not null"`
	SpeedKmh  *float64
	AccuracyM *float64
	CreatedAt time.Time `gorm:"not null;index:idx_gps_pings_courier_created,priority:2"`
}

func (PingDTO) TableName() string {
	return "gps_pings"
}

// ToDomain rebuilds a ping from its row.
func ToDomain(dto PingDTO) (*tracking.Ping, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}
	return tracking.RestorePing(id, courierID, point, dto.SpeedKmh, dto.AccuracyM, dto.CreatedAt), nil
}

type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

func (r *GormTrackingRepository) Add(ctx context.Context, ping *tracking.Ping) error {
	dto := PingDTO{
		ID:        ping.ID().Bytes(),
		CourierID: ping.CourierID().Bytes(),
		Lat:       ping.Point().Lat(),
		Lng:       ping.Point().Lng(),
		SpeedKmh:  ping.SpeedKmh(),
		AccuracyM: ping.AccuracyM(),
		CreatedAt: ping.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
