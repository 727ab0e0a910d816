// Package ocrrepo stores order slips with the fields extracted from their text.
package ocrrepo

import (
	"context"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SlipDTO struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	StoreID    *uuid.UUID          `gorm:"type:uuid;index"`
	PhotoRef   string              `gorm:"type:text;not null"`
	RawText    string              `gorm:"type:text;not null"`
	Phone      *string             `gorm:"type:varchar(32)"`
	PostalCode *string             `gorm:"type:varchar(16)"`
	OrderValue decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Confidence float64             `gorm:"not null"`
	Confirmed  bool                `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (SlipDTO) TableName() string {
	return "ocr_slips"
}

func fromDomain(s *ocr.Slip) SlipDTO {
	x := s.Extraction()
	dto := SlipDTO{
		ID:         s.ID().Bytes(),
		StoreID:    kernel.OptionalUUIDToPtr(s.StoreID()),
		PhotoRef:   s.PhotoRef(),
		RawText:    s.RawText(),
		Phone:      x.Phone,
		PostalCode: x.PostalCode,
		Confidence: s.Confidence(),
		Confirmed:  s.Confirmed(),
		CreatedAt:  s.CreatedAt(),
	}
	if x.OrderValue != nil {
		dto.OrderValue = decimal.NewNullDecimal(x.OrderValue.Decimal())
	}
	return dto
}

func toDomain(dto SlipDTO) (*ocr.Slip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.OptionalUUIDFromPtr(dto.StoreID)
	if err != nil {
		return nil, err
	}
	extraction := ocr.Extraction{Phone: dto.Phone, PostalCode: dto.PostalCode}
	if dto.OrderValue.Valid {
		value, moneyErr := kernel.NewMoney(dto.OrderValue.Decimal)
		if moneyErr != nil {
			return nil, moneyErr
		}
		extraction.OrderValue = &value
	}
	return ocr.RestoreSlip(id, storeID, dto.PhotoRef, dto.RawText, extraction, dto.Confidence, dto.Confirmed, dto.CreatedAt)
}

type GormOcrSlipRepository struct {
	db *gorm.DB
}

func NewGormOcrSlipRepository(db *gorm.DB) *GormOcrSlipRepository {
	return &GormOcrSlipRepository{db: db}
}

func (r *GormOcrSlipRepository) Add(ctx context.Context, slip *ocr.Slip) error {
	dto := fromDomain(slip)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get loads a stored slip.
func (r *GormOcrSlipRepository) Get(ctx context.Context, id kernel.UUID) (*ocr.Slip, error) {
	var dto SlipDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}
	return toDomain(dto)
}
