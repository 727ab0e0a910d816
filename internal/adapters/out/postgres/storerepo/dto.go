package storerepo

import (
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StoreDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null;index"`
	TaxID        string          `gorm:"type:varchar(32)"`
	Phone        string          `gorm:"type:varchar(32)"`
	Address      string          `gorm:"type:text"`
	Neighborhood string          `gorm:"type:varchar(128)"`
	City         string          `gorm:"type:varchar(128)"`
	PostalCode   string          `gorm:"type:varchar(16)"`
	ContactName  string          `gorm:"type:varchar(255)"`
	Email        string          `gorm:"type:varchar(255)"`
	PlatformFee  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status       string          `gorm:"type:varchar(16);not null;index"`
}

func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(s *store.Store) StoreDTO {
	p := s.Profile()
	return StoreDTO{
		ID:           s.ID().Bytes(),
		Name:         p.Name,
		TaxID:        p.TaxID,
		Phone:        p.Phone,
		Address:      p.Address,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		PostalCode:   p.PostalCode,
		ContactName:  p.ContactName,
		Email:        p.Email,
		PlatformFee:  s.PlatformFee().Decimal(),
		Status:       string(s.Status()),
	}
}

// ToDomain rebuilds a store from its row.
func ToDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.PlatformFee)
	if err != nil {
		return nil, err
	}
	status, err := store.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return store.RestoreStore(id, store.Profile{
		Name:         dto.Name,
		TaxID:        dto.TaxID,
		Phone:        dto.Phone,
		Address:      dto.Address,
		Neighborhood: dto.Neighborhood,
		City:         dto.City,
		PostalCode:   dto.PostalCode,
		ContactName:  dto.ContactName,
		Email:        dto.Email,
	}, fee, status)
}
