package courierrepo

import (
	"context"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier. The write only lands when the stored version
// still equals the loaded one; balances are never overwritten by a stale copy.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loaded := dto.Version
	dto.Version = loaded + 1

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&CourierDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("courier", aggregate.ID().String())
	}
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
