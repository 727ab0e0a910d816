package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, store_id, courier_id,
	customer_name, customer_phone, customer_address, customer_neighborhood,
	customer_city, customer_postal_code, customer_complement,
	items, order_value, payment_method, change_for, notes, origin, preparation_minutes,
	platform_fee, confirmation_code, expected_delivery_at, status,
	accepted_at, collected_at, delivered_at, cancelled_at, confirmed_at, created_at`

type orderRow struct {
	ID                   uuid.UUID
	StoreID              uuid.UUID
	CourierID            *uuid.UUID
	CustomerName         string
	CustomerPhone        string
	CustomerAddress      string
	CustomerNeighborhood string
	CustomerCity         string
	CustomerPostalCode   string
	CustomerComplement   string
	Items                string
	OrderValue           decimal.NullDecimal
	PaymentMethod        string
	ChangeFor            decimal.NullDecimal
	Notes                string
	Origin               string
	PreparationMinutes   int
	PlatformFee          decimal.Decimal
	ConfirmationCode     string
	ExpectedDeliveryAt   time.Time
	Status               string
	AcceptedAt           *time.Time
	CollectedAt          *time.Time
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
	ConfirmedAt          *time.Time
	CreatedAt            time.Time
}

func (r orderRow) view() OrderView {
	return OrderView{
		ID:                   r.ID,
		StoreID:              r.StoreID,
		CourierID:            r.CourierID,
		CustomerName:         r.CustomerName,
		CustomerPhone:        r.CustomerPhone,
		CustomerAddress:      r.CustomerAddress,
		CustomerNeighborhood: r.CustomerNeighborhood,
		CustomerCity:         r.CustomerCity,
		CustomerPostalCode:   r.CustomerPostalCode,
		CustomerComplement:   r.CustomerComplement,
		Items:                r.Items,
		OrderValue:           nullMoneyString(r.OrderValue),
		PaymentMethod:        r.PaymentMethod,
		ChangeFor:            nullMoneyString(r.ChangeFor),
		Notes:                r.Notes,
		Origin:               r.Origin,
		PreparationMinutes:   r.PreparationMinutes,
		PlatformFee:          moneyString(r.PlatformFee),
		ConfirmationCode:     r.ConfirmationCode,
		ExpectedDeliveryAt:   r.ExpectedDeliveryAt.UTC(),
		Status:               r.Status,
		AcceptedAt:           r.AcceptedAt,
		CollectedAt:          r.CollectedAt,
		DeliveredAt:          r.DeliveredAt,
		CancelledAt:          r.CancelledAt,
		ConfirmedAt:          r.ConfirmedAt,
		CreatedAt:            r.CreatedAt.UTC(),
	}
}

func orderViews(rows []orderRow) []OrderView {
	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views
}

// dayWindow returns [midnight, next midnight) in UTC for the day containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
