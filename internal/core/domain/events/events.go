// Package events defines the domain events recorded by command handlers and
// published after their unit of work commits. Name doubles as the broker
// routing key.
package events

import (
	"time"
)

// Event is a fact that happened inside a committed transaction.
type Event interface {
	Name() string
	AggregateID() string
	OccurredAt() time.Time
}

const (
	OrderCreatedName            = "order.created"
	OrderStatusChangedName      = "order.status_changed"
	DeliveryConfirmedName       = "order.delivery_confirmed"
	RouteAssembledName          = "route.assembled"
	RouteStartedName            = "route.started"
	RouteCompletedName          = "route.completed"
	CourierStatusChangedName    = "courier.status_changed"
	CourierPositionRecordedName = "courier.position_recorded"
	SettlementGeneratedName     = "payment.settlement_generated"
	PaymentPaidName             = "payment.paid"
)

type OrderCreated struct {
	OrderID            string    `json:"order_id"`
	StoreID            string    `json:"store_id"`
	ExpectedDeliveryAt time.Time `json:"expected_delivery_at"`
	At                 time.Time `json:"at"`
}

func (e OrderCreated) Name() string          { return OrderCreatedName }
func (e OrderCreated) AggregateID() string   { return e.OrderID }
func (e OrderCreated) OccurredAt() time.Time { return e.At }

type OrderStatusChanged struct {
	OrderID string    `json:"order_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}

func (e OrderStatusChanged) Name() string          { return OrderStatusChangedName }
func (e OrderStatusChanged) AggregateID() string   { return e.OrderID }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.At }

type DeliveryConfirmed struct {
	OrderID   string    `json:"order_id"`
	StoreID   string    `json:"store_id"`
	CourierID *string   `json:"courier_id,omitempty"`
	Fee       string    `json:"fee"`
	At        time.Time `json:"at"`
}

func (e DeliveryConfirmed) Name() string          { return DeliveryConfirmedName }
func (e DeliveryConfirmed) AggregateID() string   { return e.OrderID }
func (e DeliveryConfirmed) OccurredAt() time.Time { return e.At }

type RouteAssembled struct {
	RouteID   string    `json:"route_id"`
	CourierID string    `json:"courier_id"`
	OrderIDs  []string  `json:"order_ids"`
	TotalFee  string    `json:"total_fee"`
	At        time.Time `json:"at"`
}

func (e RouteAssembled) Name() string          { return RouteAssembledName }
func (e RouteAssembled) AggregateID() string   { return e.RouteID }
func (e RouteAssembled) OccurredAt() time.Time { return e.At }

type RouteStarted struct {
	RouteID   string    `json:"route_id"`
	CourierID string    `json:"courier_id"`
	At        time.Time `json:"at"`
}

func (e RouteStarted) Name() string          { return RouteStartedName }
func (e RouteStarted) AggregateID() string   { return e.RouteID }
func (e RouteStarted) OccurredAt() time.Time { return e.At }

type RouteCompleted struct {
	RouteID   string    `json:"route_id"`
	CourierID string    `json:"courier_id"`
	At        time.Time `json:"at"`
}

func (e RouteCompleted) Name() string          { return RouteCompletedName }
func (e RouteCompleted) AggregateID() string   { return e.RouteID }
func (e RouteCompleted) OccurredAt() time.Time { return e.At }

type CourierStatusChanged struct {
	CourierID string    `json:"courier_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

func (e CourierStatusChanged) Name() string          { return CourierStatusChangedName }
func (e CourierStatusChanged) AggregateID() string   { return e.CourierID }
func (e CourierStatusChanged) OccurredAt() time.Time { return e.At }

// CourierPositionRecorded is also pushed to live tracking subscribers.
type CourierPositionRecorded struct {
	CourierID string    `json:"courier_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	SpeedKmh  *float64  `json:"speed_kmh,omitempty"`
	AccuracyM *float64  `json:"accuracy_m,omitempty"`
	At        time.Time `json:"at"`
}

func (e CourierPositionRecorded) Name() string          { return CourierPositionRecordedName }
func (e CourierPositionRecorded) AggregateID() string   { return e.CourierID }
func (e CourierPositionRecorded) OccurredAt() time.Time { return e.At }

type SettlementGenerated struct {
	PaymentID     string    `json:"payment_id"`
	StoreID       string    `json:"store_id"`
	DeliveryCount int       `json:"delivery_count"`
	Gross         string    `json:"gross"`
	At            time.Time `json:"at"`
}

func (e SettlementGenerated) Name() string          { return SettlementGeneratedName }
func (e SettlementGenerated) AggregateID() string   { return e.PaymentID }
func (e SettlementGenerated) OccurredAt() time.Time { return e.At }

type PaymentPaid struct {
	PaymentID string    `json:"payment_id"`
	Method    string    `json:"method"`
	At        time.Time `json:"at"`
}

func (e PaymentPaid) Name() string          { return PaymentPaidName }
func (e PaymentPaid) AggregateID() string   { return e.PaymentID }
func (e PaymentPaid) OccurredAt() time.Time { return e.At }
