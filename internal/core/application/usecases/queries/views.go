// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read the database directly and return views, flat read models that
// the HTTP adapter serializes as they are. Command results use the same views
// through the *View constructors below.
package queries

import (
	"time"

	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model of an order. Money fields are decimal strings
// with two places.
type OrderView struct {
	ID                   uuid.UUID  `json:"id"`
	StoreID              uuid.UUID  `json:"store_id"`
	CourierID            *uuid.UUID `json:"courier_id"`
	CustomerName         string     `json:"customer_name"`
	CustomerPhone        string     `json:"customer_phone"`
	CustomerAddress      string     `json:"customer_address"`
	CustomerNeighborhood string     `json:"customer_neighborhood"`
	CustomerCity         string     `json:"customer_city"`
	CustomerPostalCode   string     `json:"customer_postal_code"`
	CustomerComplement   string     `json:"customer_complement"`
	Items                string     `json:"items"`
	OrderValue           *string    `json:"order_value"`
	PaymentMethod        string     `json:"payment_method"`
	ChangeFor            *string    `json:"change_for"`
	Notes                string     `json:"notes"`
	Origin               string     `json:"origin"`
	PreparationMinutes   int        `json:"preparation_minutes"`
	PlatformFee          string     `json:"platform_fee"`
	ConfirmationCode     string     `json:"confirmation_code"`
	ExpectedDeliveryAt   time.Time  `json:"expected_delivery_at"`
	Status               string     `json:"status"`
	AcceptedAt           *time.Time `json:"accepted_at"`
	CollectedAt          *time.Time `json:"collected_at"`
	DeliveredAt          *time.Time `json:"delivered_at"`
	CancelledAt          *time.Time `json:"cancelled_at"`
	ConfirmedAt          *time.Time `json:"confirmed_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

func NewOrderView(o *order.Order) OrderView {
	c := o.Customer()
	d := o.Details()
	return OrderView{
		ID:                   o.ID().Bytes(),
		StoreID:              o.StoreID().Bytes(),
		CourierID:            kernel.OptionalUUIDToPtr(o.Courier()),
		CustomerName:         c.Name,
		CustomerPhone:        c.Phone,
		CustomerAddress:      c.Address,
		CustomerNeighborhood: c.Neighborhood,
		CustomerCity:         c.City,
		CustomerPostalCode:   c.PostalCode,
		CustomerComplement:   c.Complement,
		Items:                d.Items,
		OrderValue:           optionalMoney(d.OrderValue),
		PaymentMethod:        d.PaymentMethod,
		ChangeFor:            optionalMoney(d.ChangeFor),
		Notes:                d.Notes,
		Origin:               d.Origin,
		PreparationMinutes:   d.PreparationMinutes,
		PlatformFee:          o.PlatformFee().String(),
		ConfirmationCode:     o.Code().String(),
		ExpectedDeliveryAt:   o.ExpectedDeliveryAt(),
		Status:               o.Status().String(),
		AcceptedAt:           o.AcceptedAt(),
		CollectedAt:          o.CollectedAt(),
		DeliveredAt:          o.DeliveredAt(),
		CancelledAt:          o.CancelledAt(),
		ConfirmedAt:          o.ConfirmedAt(),
		CreatedAt:            o.CreatedAt(),
	}
}

type CourierView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	TaxID           string     `json:"tax_id"`
	Email           string     `json:"email"`
	Vehicle         string     `json:"vehicle"`
	Plate           string     `json:"plate"`
	License         string     `json:"license"`
	PixKey          string     `json:"pix_key"`
	Status          string     `json:"status"`
	Lat             *float64   `json:"lat"`
	Lng             *float64   `json:"lng"`
	LastGPSAt       *time.Time `json:"last_gps_at"`
	TotalDeliveries int        `json:"total_deliveries"`
	Balance         string     `json:"balance"`
	Rating          float64    `json:"rating"`
}

func NewCourierView(c *courier.Courier) CourierView {
	p := c.Profile()
	v := CourierView{
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
		Balance:         c.Balance().String(),
		Rating:          c.Rating(),
	}
	if pos := c.Position(); pos != nil {
		lat, lng := pos.Lat(), pos.Lng()
		v.Lat, v.Lng = &lat, &lng
	}
	return v
}

type RouteView struct {
	ID             uuid.UUID   `json:"id"`
	CourierID      uuid.UUID   `json:"courier_id"`
	OrderIDs       []uuid.UUID `json:"order_ids"`
	OrderCount     int         `json:"order_count"`
	GoogleMapsLink string      `json:"google_maps_link"`
	WazeLink       string      `json:"waze_link"`
	TotalFee       string      `json:"total_fee"`
	Status         string      `json:"status"`
	StartedAt      *time.Time  `json:"started_at"`
	CompletedAt    *time.Time  `json:"completed_at"`
	CreatedAt      time.Time   `json:"created_at"`
}

func NewRouteView(r *route.Route) RouteView {
	ids := make([]uuid.UUID, 0, r.OrderCount())
	for _, id := range r.OrderIDs() {
		ids = append(ids, id.Bytes())
	}
	return RouteView{
		ID:             r.ID().Bytes(),
		CourierID:      r.CourierID().Bytes(),
		OrderIDs:       ids,
		OrderCount:     r.OrderCount(),
		GoogleMapsLink: r.Links().GoogleMaps,
		WazeLink:       r.Links().Waze,
		TotalFee:       r.TotalFee().String(),
		Status:         string(r.Status()),
		StartedAt:      r.StartedAt(),
		CompletedAt:    r.CompletedAt(),
		CreatedAt:      r.CreatedAt(),
	}
}

type PaymentView struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	StoreID       uuid.UUID  `json:"store_id"`
	CourierID     *uuid.UUID `json:"courier_id"`
	PeriodStart   string     `json:"period_start"`
	PeriodEnd     string     `json:"period_end"`
	DeliveryCount int        `json:"delivery_count"`
	Gross         string     `json:"gross"`
	Net           string     `json:"net"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	ReceiptRef    string     `json:"receipt_ref"`
	PaidAt        *time.Time `json:"paid_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewPaymentView(p *payment.Payment) PaymentView {
	return PaymentView{
		ID:            p.ID().Bytes(),
		Type:          string(p.Type()),
		StoreID:       p.StoreID().Bytes(),
		CourierID:     kernel.OptionalUUIDToPtr(p.CourierID()),
		PeriodStart:   p.Period().Start().Format(payment.DateLayout),
		PeriodEnd:     p.Period().End().Format(payment.DateLayout),
		DeliveryCount: p.DeliveryCount(),
		Gross:         p.Gross().String(),
		Net:           p.Net().String(),
		Status:        string(p.Status()),
		Method:        p.Method(),
		ReceiptRef:    p.ReceiptRef(),
		PaidAt:        p.PaidAt(),
		CreatedAt:     p.CreatedAt(),
	}
}

type StoreView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postal_code"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	PlatformFee  string    `json:"platform_fee"`
	Status       string    `json:"status"`
}

func NewStoreView(s *store.Store) StoreView {
	p := s.Profile()
	return StoreView{
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
		PlatformFee:  s.PlatformFee().String(),
		Status:       string(s.Status()),
	}
}

type PingView struct {
	ID        uuid.UUID `json:"id"`
	CourierID uuid.UUID `json:"courier_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	SpeedKmh  *float64  `json:"speed_kmh"`
	AccuracyM *float64  `json:"accuracy_m"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPingView(p *tracking.Ping) PingView {
	return PingView{
		ID:        p.ID().Bytes(),
		CourierID: p.CourierID().Bytes(),
		Lat:       p.Point().Lat(),
		Lng:       p.Point().Lng(),
		SpeedKmh:  p.SpeedKmh(),
		AccuracyM: p.AccuracyM(),
		CreatedAt: p.CreatedAt(),
	}
}

func optionalMoney(m *kernel.Money) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

func moneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoneyString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}
