package http

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name      string     `json:"name"       validate:"required"`
	Email     string     `json:"email"      validate:"required,email"`
	Password  string     `json:"password"   validate:"required,min=6"`
	Role      string     `json:"role"       validate:"omitempty,oneof=store courier admin"`
	StoreID   *uuid.UUID `json:"store_id"`
	CourierID *uuid.UUID `json:"courier_id"`
}

type CreateStoreRequest struct {
	Name         string           `json:"name"         validate:"required"`
	TaxID        string           `json:"tax_id"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	Neighborhood string           `json:"neighborhood"`
	City         string           `json:"city"`
	PostalCode   string           `json:"postal_code"`
	ContactName  string           `json:"contact_name"`
	Email        string           `json:"email"        validate:"omitempty,email"`
	PlatformFee  *decimal.Decimal `json:"platform_fee"`
}

// UpdateStoreRequest is a partial update; absent fields keep their value.
type UpdateStoreRequest struct {
	Name         *string          `json:"name"         validate:"omitempty,min=1"`
	TaxID        *string          `json:"tax_id"`
	Phone        *string          `json:"phone"`
	Address      *string          `json:"address"`
	Neighborhood *string          `json:"neighborhood"`
	City         *string          `json:"city"`
	PostalCode   *string          `json:"postal_code"`
	ContactName  *string          `json:"contact_name"`
	Email        *string          `json:"email"        validate:"omitempty,email"`
	PlatformFee  *decimal.Decimal `json:"platform_fee"`
	Status       *string          `json:"status"       validate:"omitempty,oneof=active inactive"`
}

type CreateCourierRequest struct {
	Name    string `json:"name"     validate:"required"`
	Phone   string `json:"phone"    validate:"required"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"    validate:"omitempty,email"`
	Vehicle string `json:"vehicle"`
	Plate   string `json:"plate"`
	License string `json:"license"`
	PixKey  string `json:"pix_key"`
}

type CourierStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available on_route offline blocked"`
}

// PositionRequest leaves lat and lng optional so a missing coordinate is
// reported as a domain error rather than a schema error.
type PositionRequest struct {
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	SpeedKmh  *float64 `json:"speed_kmh"  validate:"omitempty,gte=0"`
	AccuracyM *float64 `json:"accuracy_m" validate:"omitempty,gte=0"`
}

type CreateOrderRequest struct {
	StoreID              *uuid.UUID       `json:"store_id"`
	CustomerName         string           `json:"customer_name"`
	CustomerPhone        string           `json:"customer_phone"`
	CustomerAddress      string           `json:"customer_address"      validate:"required"`
	CustomerNeighborhood string           `json:"customer_neighborhood"`
	CustomerCity         string           `json:"customer_city"`
	CustomerPostalCode   string           `json:"customer_postal_code"`
	CustomerComplement   string           `json:"customer_complement"`
	Items                string           `json:"items"`
	OrderValue           *decimal.Decimal `json:"order_value"`
	PaymentMethod        string           `json:"payment_method"`
	ChangeFor            *decimal.Decimal `json:"change_for"`
	Notes                string           `json:"notes"`
	Origin               string           `json:"origin"`
	PreparationMinutes   int              `json:"preparation_minutes"   validate:"gte=0,lte=1440"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted collected on_route delivered cancelled problem"`
}

type ConfirmDeliveryRequest struct {
	Code string `json:"code" validate:"required"`
}

type AssembleRouteRequest struct {
	CourierID     uuid.UUID   `json:"courier_id"     validate:"required"`
	OrderIDs      []uuid.UUID `json:"order_ids"      validate:"required,min=1"`
	OriginAddress string      `json:"origin_address"`
}

// GenerateSettlementRequest defaults to the previous Monday to Sunday week when
// the period is omitted. Dates use YYYY-MM-DD.
type GenerateSettlementRequest struct {
	StoreID     *uuid.UUID `json:"store_id"`
	PeriodStart string     `json:"period_start" validate:"required_with=PeriodEnd"`
	PeriodEnd   string     `json:"period_end"   validate:"required_with=PeriodStart"`
}

type MarkPaidRequest struct {
	Method     string `json:"method"`
	ReceiptRef string `json:"receipt_ref"`
}

type IngestOcrRequest struct {
	StoreID  *uuid.UUID `json:"store_id"`
	PhotoRef string     `json:"photo_ref"`
	RawText  string     `json:"raw_text" validate:"required"`
}
