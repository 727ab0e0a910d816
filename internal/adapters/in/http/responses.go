package http

import (
	"time"

	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	StoreID     *uuid.UUID `json:"store_id"`
	CourierID   *uuid.UUID `json:"courier_id"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func newUserView(u *user.User) UserView {
	return UserView{
		ID:          u.ID().Bytes(),
		Name:        u.Name(),
		Email:       u.Email(),
		Role:        string(u.Role()),
		Status:      string(u.Status()),
		StoreID:     kernel.OptionalUUIDToPtr(u.StoreID()),
		CourierID:   kernel.OptionalUUIDToPtr(u.CourierID()),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type ConfirmDeliveryResponse struct {
	Order   queries.OrderView    `json:"order"`
	Courier *queries.CourierView `json:"courier"`
}

// RouteStop is one stop of an assembled route, in delivery order.
type RouteStop struct {
	Position         int       `json:"position"`
	OrderID          uuid.UUID `json:"order_id"`
	CustomerName     string    `json:"customer_name"`
	Address          string    `json:"address"`
	ConfirmationCode string    `json:"confirmation_code"`
}

type AssembleRouteResponse struct {
	Route   queries.RouteView   `json:"route"`
	Stops   []RouteStop         `json:"stops"`
	Courier queries.CourierView `json:"courier"`
}

func newRouteStops(orders []*order.Order) []RouteStop {
	stops := make([]RouteStop, 0, len(orders))
	for i, o := range orders {
		stops = append(stops, RouteStop{
			Position:         i + 1,
			OrderID:          o.ID().Bytes(),
			CustomerName:     o.Customer().Name,
			Address:          o.Customer().Address,
			ConfirmationCode: o.Code().String(),
		})
	}
	return stops
}

type SettlementResponse struct {
	Payment queries.PaymentView `json:"payment"`
	Message string              `json:"message"`
}

type OcrSlipView struct {
	ID         uuid.UUID  `json:"id"`
	StoreID    *uuid.UUID `json:"store_id"`
	PhotoRef   string     `json:"photo_ref"`
	RawText    string     `json:"raw_text"`
	Phone      *string    `json:"phone"`
	PostalCode *string    `json:"postal_code"`
	OrderValue *string    `json:"order_value"`
	Confidence float64    `json:"confidence"`
	Confirmed  bool       `json:"confirmed"`
	CreatedAt  time.Time  `json:"created_at"`
}

func newOcrSlipView(s *ocr.Slip) OcrSlipView {
	ex := s.Extraction()
	var value *string
	if ex.OrderValue != nil {
		v := ex.OrderValue.String()
		value = &v
	}
	return OcrSlipView{
		ID:         s.ID().Bytes(),
		StoreID:    kernel.OptionalUUIDToPtr(s.StoreID()),
		PhotoRef:   s.PhotoRef(),
		RawText:    s.RawText(),
		Phone:      ex.Phone,
		PostalCode: ex.PostalCode,
		OrderValue: value,
		Confidence: s.Confidence(),
		Confirmed:  s.Confirmed(),
		CreatedAt:  s.CreatedAt(),
	}
}
