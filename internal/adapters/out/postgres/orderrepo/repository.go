package orderrepo

import (
	"context"
	"time"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column and bumps the version, provided the row still carries
// the version the aggregate was loaded with.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loaded := dto.Version
	dto.Version = loaded + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ListDeliveredForStore returns delivered orders of the store created in [from, until).
func (r *GormOrderRepository) ListDeliveredForStore(
	ctx context.Context,
	storeID kernel.UUID,
	from, until time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			storeID.Bytes(), order.Delivered.String(), from, until).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := ToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConcurrentModificationError("order", id.String())
}
