package storerepo

import (
	"context"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormStoreRepository) Update(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StoreDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("store", aggregate.ID().String())
	}
	return nil
}

func (r *GormStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// ListActive returns active stores ordered by name.
func (r *GormStoreRepository) ListActive(ctx context.Context) ([]*store.Store, error) {
	var dtos []StoreDTO
	if err := r.db.WithContext(ctx).Where("status = ?", string(store.Active)).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stores := make([]*store.Store, 0, len(dtos))
	for _, dto := range dtos {
		s, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, nil
}
