package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListCouriersQueryIsNotConstructed = errors.New("ListCouriersQuery must be created via NewListCouriersQuery constructor")
	ErrGetCourierQueryIsNotConstructed   = errors.New("GetCourierQuery must be created via NewGetCourierQuery constructor")
)

const courierColumns = `id, name, phone, tax_id, email, vehicle, plate, license, pix_key, status,
	position_lat, position_lng, last_gps_at, total_deliveries, balance, rating`

type courierRow struct {
	ID              uuid.UUID
	Name            string
	Phone           string
	TaxID           string
	Email           string
	Vehicle         string
	Plate           string
	License         string
	PixKey          string
	Status          string
	PositionLat     *float64
	PositionLng     *float64
	LastGPSAt       *time.Time `gorm:"column:last_gps_at"`
	TotalDeliveries int
	Balance         decimal.Decimal
	Rating          float64
}

func (r courierRow) view() CourierView {
	return CourierView{
		ID:              r.ID,
		Name:            r.Name,
		Phone:           r.Phone,
		TaxID:           r.TaxID,
		Email:           r.Email,
		Vehicle:         r.Vehicle,
		Plate:           r.Plate,
		License:         r.License,
		PixKey:          r.PixKey,
		Status:          r.Status,
		Lat:             r.PositionLat,
		Lng:             r.PositionLng,
		LastGPSAt:       r.LastGPSAt,
		TotalDeliveries: r.TotalDeliveries,
		Balance:         moneyString(r.Balance),
		Rating:          r.Rating,
	}
}

// ListCouriersQuery lists couriers ordered by name. With availableOnly set the
// list holds only available couriers, best rated first.
type ListCouriersQuery struct {
	status        *courier.Status
	availableOnly bool
	guard         guard.ConstructorGuard
}

// NewListCouriersQuery filters by status; an empty string lists all couriers.
func NewListCouriersQuery(status string) (ListCouriersQuery, error) {
	q := ListCouriersQuery{guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := courier.ParseStatus(status)
		if err != nil {
			return ListCouriersQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func NewListAvailableCouriersQuery() ListCouriersQuery {
	available := courier.Available
	return ListCouriersQuery{status: &available, availableOnly: true, guard: guard.NewConstructorGuard()}
}

func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

type ListCouriersQueryHandler struct {
	db *gorm.DB
}

func NewListCouriersQueryHandler(db *gorm.DB) ListCouriersQueryHandler {
	return ListCouriersQueryHandler{db: db}
}

func (h ListCouriersQueryHandler) Handle(ctx context.Context, query ListCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("couriers").Select(courierColumns)
	if query.status != nil {
		tx = tx.Where("status = ?", query.status.String())
	}
	if query.availableOnly {
		tx = tx.Order("rating DESC").Order("name")
	} else {
		tx = tx.Order("name")
	}

	var rows []courierRow
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	couriers := make([]CourierView, 0, len(rows))
	for _, r := range rows {
		couriers = append(couriers, r.view())
	}
	return couriers, nil
}

type GetCourierQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetCourierQuery(id kernel.UUID) (GetCourierQuery, error) {
	if err := id.Validate(); err != nil {
		return GetCourierQuery{}, err
	}
	return GetCourierQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

type GetCourierQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (CourierView, error) {
	if err := query.Validate(); err != nil {
		return CourierView{}, err
	}

	var rows []courierRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+courierColumns+" FROM couriers WHERE id = ?", query.id.Bytes()).
		Scan(&rows).Error
	if err != nil {
		return CourierView{}, err
	}
	if len(rows) == 0 {
		return CourierView{}, errs.NewObjectNotFoundError("courier", query.id.String())
	}
	return rows[0].view(), nil
}
