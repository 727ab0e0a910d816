// Package courierrepo persists courier aggregates together with their last known
// position.
package courierrepo

import (
	"time"

	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null;index"`
	Phone   string    `gorm:"type:varchar(32);not null"`
	TaxID   string    `gorm:"type:varchar(32)"`
	Email   string    `gorm:"type:varchar(255)"`
	Vehicle string    `gorm:"type:varchar(32)"`
	Plate   string    `gorm:"type:varchar(16)"`
	License string    `gorm:"type:varchar(32)"`
	PixKey  string    `gorm:"type:varchar(255)"`
	Status  string    `gorm:"type:varchar(16);not null;index"`

	Position  PositionDTO `gorm:"embedded;embeddedPrefix:position_"`
	LastGPSAt *time.Time

	TotalDeliveries int             `gorm:"not null;default:0"`
	Balance         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Rating          float64         `gorm:"not null"`

	Version int64 `gorm:"not null;default:0"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// PositionDTO is the last GPS fix; both columns are null until the first ping.
type PositionDTO struct {
	Lat *float64
	Lng *float64
}

func fromDomain(c *courier.Courier) CourierDTO {
	p := c.Profile()
	dto := CourierDTO{
		ID:              c.ID().Bytes(),
		Name:            p.Name,
		Phone:           p.Phone,
		TaxID:           p.TaxID,
		Email:           p.Email,
		Vehicle:         p.Vehicle,
		Plate:           p.Plate,
		License:         p.License,
		PixKey:          p.PixKey,
		Status:          c.Status().String(),
		LastGPSAt:       c.LastGPSAt(),
		TotalDeliveries: c.TotalDeliveries(),
		Balance:         c.Balance().Decimal(),
		Rating:          c.Rating(),
		Version:         c.Version(),
	}
	if pos := c.Position(); pos != nil {
		lat, lng := pos.Lat(), pos.Lng()
		dto.Position = PositionDTO{Lat: &lat, Lng: &lng}
	}
	return dto
}

// ToDomain rebuilds a courier from its row. Queries reuse it for list results.
func ToDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := courier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Position.Lat != nil && dto.Position.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Position.Lat, *dto.Position.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &point
	}

	return courier.RestoreCourier(courier.State{
		ID: id,
		Profile: courier.Profile{
			Name:    dto.Name,
			Phone:   dto.Phone,
			TaxID:   dto.TaxID,
			Email:   dto.Email,
			Vehicle: dto.Vehicle,
			Plate:   dto.Plate,
			License: dto.License,
			PixKey:  dto.PixKey,
		},
		Status:          status,
		Position:        position,
		LastGPSAt:       dto.LastGPSAt,
		TotalDeliveries: dto.TotalDeliveries,
		Balance:         balance,
		Rating:          dto.Rating,
		Version:         dto.Version,
	})
}
