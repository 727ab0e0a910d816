package userrepo

import (
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(16);not null"`
	Status       string     `gorm:"type:varchar(16);not null"`
	StoreID      *uuid.UUID `gorm:"type:uuid"`
	CourierID    *uuid.UUID `gorm:"type:uuid"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	s := u.State()
	return UserDTO{
		ID:           s.ID.Bytes(),
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Role:         string(s.Role),
		Status:       string(s.Status),
		StoreID:      kernel.OptionalUUIDToPtr(s.StoreID),
		CourierID:    kernel.OptionalUUIDToPtr(s.CourierID),
		LastLoginAt:  s.LastLoginAt,
		CreatedAt:    s.CreatedAt,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.OptionalUUIDFromPtr(dto.StoreID)
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.OptionalUUIDFromPtr(dto.CourierID)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.State{
		ID:           id,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Role:         user.Role(dto.Role),
		Status:       user.Status(dto.Status),
		StoreID:      storeID,
		CourierID:    courierID,
		LastLoginAt:  dto.LastLoginAt,
		CreatedAt:    dto.CreatedAt,
	})
}
