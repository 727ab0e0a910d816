package paymentrepo

import (
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type          string          `gorm:"type:varchar(32);not null"`
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierID     *uuid.UUID      `gorm:"type:uuid;index"`
	PeriodStart   time.Time       `gorm:"type:date;not null"`
	PeriodEnd     time.Time       `gorm:"type:date;not null"`
	DeliveryCount int             `gorm:"not null"`
	Gross         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Net           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(16);not null;index"`
	Method        string          `gorm:"type:varchar(32)"`
	ReceiptRef    string          `gorm:"type:varchar(255)"`
	PaidAt        *time.Time
	CreatedAt     time.Time `gorm:"index"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		Type:          string(p.Type()),
		StoreID:       p.StoreID().Bytes(),
		CourierID:     kernel.OptionalUUIDToPtr(p.CourierID()),
		PeriodStart:   p.Period().Start(),
		PeriodEnd:     p.Period().End(),
		DeliveryCount: p.DeliveryCount(),
		Gross:         p.Gross().Decimal(),
		Net:           p.Net().Decimal(),
		Status:        string(p.Status()),
		Method:        p.Method(),
		ReceiptRef:    p.ReceiptRef(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}

// ToDomain rebuilds a payment from its row.
func ToDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.OptionalUUIDFromPtr(dto.CourierID)
	if err != nil {
		return nil, err
	}
	period, err := payment.NewPeriod(dto.PeriodStart.UTC(), dto.PeriodEnd.UTC())
	if err != nil {
		return nil, err
	}
	gross, err := kernel.NewMoney(dto.Gross)
	if err != nil {
		return nil, err
	}
	net, err := kernel.NewMoney(dto.Net)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(payment.State{
		ID:            id,
		Type:          payment.Type(dto.Type),
		StoreID:       storeID,
		CourierID:     courierID,
		Period:        period,
		DeliveryCount: dto.DeliveryCount,
		Gross:         gross,
		Net:           net,
		Status:        payment.Status(dto.Status),
		Method:        dto.Method,
		ReceiptRef:    dto.ReceiptRef,
		PaidAt:        dto.PaidAt,
		CreatedAt:     dto.CreatedAt,
	})
}
