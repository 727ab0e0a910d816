package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListPaymentsQueryIsNotConstructed = errors.New("ListPaymentsQuery must be created via NewListPaymentsQuery constructor")
	ErrGetPaymentQueryIsNotConstructed   = errors.New("GetPaymentQuery must be created via NewGetPaymentQuery constructor")
)

type paymentRow struct {
	ID            uuid.UUID
	Type          string
	StoreID       uuid.UUID
	CourierID     *uuid.UUID
	PeriodStart   time.Time
	PeriodEnd     time.Time
	DeliveryCount int
	Gross         decimal.Decimal
	Net           decimal.Decimal
	Status        string
	Method        string
	ReceiptRef    string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

func (r paymentRow) view() PaymentView {
	return PaymentView{
		ID:            r.ID,
		Type:          r.Type,
		StoreID:       r.StoreID,
		CourierID:     r.CourierID,
		PeriodStart:   r.PeriodStart.UTC().Format(payment.DateLayout),
		PeriodEnd:     r.PeriodEnd.UTC().Format(payment.DateLayout),
		DeliveryCount: r.DeliveryCount,
		Gross:         moneyString(r.Gross),
		Net:           moneyString(r.Net),
		Status:        r.Status,
		Method:        r.Method,
		ReceiptRef:    r.ReceiptRef,
		PaidAt:        r.PaidAt,
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

type ListPaymentsQuery struct {
	storeID   *kernel.UUID
	courierID *kernel.UUID
	status    *payment.Status
	guard     guard.ConstructorGuard
}

func NewListPaymentsQuery(storeID, courierID *kernel.UUID, status string) (ListPaymentsQuery, error) {
	q := ListPaymentsQuery{storeID: storeID, courierID: courierID, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := payment.ParseStatus(status)
		if err != nil {
			return ListPaymentsQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

// ListPaymentsQueryHandler lists payments newest first.
type ListPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewListPaymentsQueryHandler(db *gorm.DB) ListPaymentsQueryHandler {
	return ListPaymentsQueryHandler{db: db}
}

func (h ListPaymentsQueryHandler) Handle(ctx context.Context, query ListPaymentsQuery) ([]PaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("payments")
	if query.storeID != nil {
		tx = tx.Where("store_id = ?", query.storeID.Bytes())
	}
	if query.courierID != nil {
		tx = tx.Where("courier_id = ?", query.courierID.Bytes())
	}
	if query.status != nil {
		tx = tx.Where("status = ?", string(*query.status))
	}

	var rows []paymentRow
	if err := tx.Order("created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]PaymentView, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, r.view())
	}
	return payments, nil
}

type GetPaymentQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetPaymentQuery(id kernel.UUID) (GetPaymentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetPaymentQuery{}, err
	}
	return GetPaymentQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

type GetPaymentQueryHandler struct {
	db *gorm.DB
}

func NewGetPaymentQueryHandler(db *gorm.DB) GetPaymentQueryHandler {
	return GetPaymentQueryHandler{db: db}
}

func (h GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (PaymentView, error) {
	if err := query.Validate(); err != nil {
		return PaymentView{}, err
	}

	var rows []paymentRow
	err := h.db.WithContext(ctx).Table("payments").Where("id = ?", query.id.Bytes()).Scan(&rows).Error
	if err != nil {
		return PaymentView{}, err
	}
	if len(rows) == 0 {
		return PaymentView{}, errs.NewObjectNotFoundError("payment", query.id.String())
	}
	return rows[0].view(), nil
}
