// Package orderrepo persists order aggregates. Customer and detail fields are
// flattened into prefixed columns of the orders table.
package orderrepo

import (
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`

	Customer CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`

	Items              string
	OrderValue         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	PaymentMethod      string
	ChangeFor          decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Notes              string
	Origin             string
	PreparationMinutes int

	PlatformFee        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ConfirmationCode   string          `gorm:"size:6;not null"`
	ExpectedDeliveryAt time.Time       `gorm:"index"`
	Status             string          `gorm:"size:16;index;not null"`

	AcceptedAt  *time.Time
	CollectedAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	ConfirmedAt *time.Time
	CreatedAt   time.Time `gorm:"index"`

	Version int64 `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is embedded into the orders table with the customer_ prefix.
type CustomerDTO struct {
	Name         string
	Phone        string
	Address      string `gorm:"not null"`
	Neighborhood string `gorm:"index"`
	City         string
	PostalCode   string
	Complement   string
}

func fromDomain(o *order.Order) OrderDTO {
	c := o.Customer()
	d := o.Details()

	return OrderDTO{
		ID:        o.ID().Bytes(),
		StoreID:   o.StoreID().Bytes(),
		CourierID: kernel.OptionalUUIDToPtr(o.Courier()),
		Customer: CustomerDTO{
			Name:         c.Name,
			Phone:        c.Phone,
			Address:      c.Address,
			Neighborhood: c.Neighborhood,
			City:         c.City,
			PostalCode:   c.PostalCode,
			Complement:   c.Complement,
		},
		Items:              d.Items,
		OrderValue:         nullDecimal(d.OrderValue),
		PaymentMethod:      d.PaymentMethod,
		ChangeFor:          nullDecimal(d.ChangeFor),
		Notes:              d.Notes,
		Origin:             d.Origin,
		PreparationMinutes: d.PreparationMinutes,
		PlatformFee:        o.PlatformFee().Decimal(),
		ConfirmationCode:   o.Code().String(),
		ExpectedDeliveryAt: o.ExpectedDeliveryAt(),
		Status:             o.Status().String(),
		AcceptedAt:         o.AcceptedAt(),
		CollectedAt:        o.CollectedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancelledAt:        o.CancelledAt(),
		ConfirmedAt:        o.ConfirmedAt(),
		CreatedAt:          o.CreatedAt(),
		Version:            o.Version(),
	}
}

// ToDomain rebuilds an order from its row. Queries reuse it for list results.
func ToDomain(dto OrderDTO) (*order.Order, error) {
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
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	code, err := order.ParseConfirmationCode(dto.ConfirmationCode)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.PlatformFee)
	if err != nil {
		return nil, err
	}
	orderValue, err := optionalMoney(dto.OrderValue)
	if err != nil {
		return nil, err
	}
	changeFor, err := optionalMoney(dto.ChangeFor)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:        id,
		StoreID:   storeID,
		CourierID: courierID,
		Customer: order.Customer{
			Name:         dto.Customer.Name,
			Phone:        dto.Customer.Phone,
			Address:      dto.Customer.Address,
			Neighborhood: dto.Customer.Neighborhood,
			City:         dto.Customer.City,
			PostalCode:   dto.Customer.PostalCode,
			Complement:   dto.Customer.Complement,
		},
		Details: order.Details{
			Items:              dto.Items,
			OrderValue:         orderValue,
			PaymentMethod:      dto.PaymentMethod,
			ChangeFor:          changeFor,
			Notes:              dto.Notes,
			Origin:             dto.Origin,
			PreparationMinutes: dto.PreparationMinutes,
		},
		PlatformFee:        fee,
		Code:               code,
		ExpectedDeliveryAt: dto.ExpectedDeliveryAt,
		Status:             status,
		AcceptedAt:         dto.AcceptedAt,
		CollectedAt:        dto.CollectedAt,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
		ConfirmedAt:        dto.ConfirmedAt,
		CreatedAt:          dto.CreatedAt,
		Version:            dto.Version,
	})
}

func nullDecimal(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Decimal(), Valid: true}
}

func optionalMoney(d decimal.NullDecimal) (*kernel.Money, error) {
	if !d.Valid {
		return nil, nil //nolint:nilnil // absent value
	}
	m, err := kernel.NewMoney(d.Decimal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
