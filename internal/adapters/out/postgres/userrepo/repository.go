package userrepo

import (
	"context"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/domain/model/user"
	"montarota/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrEmailIsTaken = errs.NewConflictError("user", "email is already registered")

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts the user. The unique index on email turns a duplicate registration
// into ErrEmailIsTaken.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return ErrEmailIsTaken
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if pgerrs.IsUniqueViolation(result.Error) {
			return ErrEmailIsTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return nil
}

// GetByEmail looks the user up by normalized email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized := user.NormalizeEmail(email)

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if pgerrs.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("user", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}
