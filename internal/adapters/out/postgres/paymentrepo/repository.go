package paymentrepo

import (
	"context"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update only touches rows still pending, so two concurrent payouts cannot both land.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(payment.Pending)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PaymentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
		}
		return errs.NewConflictError("payment", "is already paid")
	}
	return nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
