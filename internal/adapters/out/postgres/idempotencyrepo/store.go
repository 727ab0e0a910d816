// Package idempotencyrepo keeps Idempotency-Key reservations and stored responses
// in a table keyed by the client supplied key.
package idempotencyrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"montarota/internal/adapters/out/postgres/pgerrs"
	"montarota/internal/core/ports"

	"gorm.io/gorm"
)

var ErrKeyIsNotReserved = errors.New("idempotency key is not reserved")

type RecordDTO struct {
	Key            string `gorm:"column:idempotency_key;type:varchar(255);primaryKey"`
	Fingerprint    string `gorm:"type:varchar(128);not null"`
	Status         string `gorm:"type:varchar(16);not null"`
	ResponseStatus int
	ResponseBody   []byte
	CreatedAt      time.Time
	ExpiresAt      time.Time `gorm:"not null;index"`
}

func (RecordDTO) TableName() string {
	return "idempotency_keys"
}

func (dto RecordDTO) toRecord() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:            dto.Key,
		Fingerprint:    dto.Fingerprint,
		Status:         ports.IdempotencyStatus(dto.Status),
		ResponseStatus: dto.ResponseStatus,
		ResponseBody:   dto.ResponseBody,
		CreatedAt:      dto.CreatedAt,
		ExpiresAt:      dto.ExpiresAt,
	}
}

// Store implements ports.IdempotencyStore on top of a unique primary key.
type Store struct {
	db      *gorm.DB
	nowFunc func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, nowFunc: func() time.Time { return time.Now().UTC() }}
}

// Reserve inserts an in-progress record. Losing the insert race means another
// request owns the key; its record is returned unless it already expired, in
// which case the stale row is dropped and the insert retried once.
func (s *Store) Reserve(
	ctx context.Context,
	key, fingerprint string,
	ttl time.Duration,
) (*ports.IdempotencyRecord, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		now := s.nowFunc()
		dto := RecordDTO{
			Key:         key,
			Fingerprint: fingerprint,
			Status:      string(ports.IdempotencyInProgress),
			CreatedAt:   now,
			ExpiresAt:   now.Add(ttl),
		}

		err := s.db.WithContext(ctx).Create(&dto).Error
		if err == nil {
			return dto.toRecord(), true, nil
		}
		if !pgerrs.IsUniqueViolation(err) {
			return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
		}

		var existing RecordDTO
		if err := s.db.WithContext(ctx).First(&existing, "idempotency_key = ?", key).Error; err != nil {
			if pgerrs.IsNotFound(err) {
				continue
			}
			return nil, false, fmt.Errorf("load idempotency key: %w", err)
		}
		if existing.ExpiresAt.After(now) {
			return existing.toRecord(), false, nil
		}

		if err := s.db.WithContext(ctx).
			Where("idempotency_key = ? AND expires_at <= ?", key, now).
			Delete(&RecordDTO{}).Error; err != nil {
			return nil, false, fmt.Errorf("drop expired idempotency key: %w", err)
		}
	}
	return nil, false, fmt.Errorf("reserve idempotency key %q: %w", key, gorm.ErrDuplicatedKey)
}

// Complete stores the response for a key that is still in progress.
func (s *Store) Complete(ctx context.Context, key string, status int, body []byte) error {
	result := s.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("idempotency_key = ? AND status = ?", key, string(ports.IdempotencyInProgress)).
		Updates(map[string]any{
			"status":          string(ports.IdempotencyCompleted),
			"response_status": status,
			"response_body":   body,
		})
	if result.Error != nil {
		return fmt.Errorf("complete idempotency key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrKeyIsNotReserved
	}
	return nil
}

// Release removes an in-progress reservation.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("idempotency_key = ? AND status = ?", key, string(ports.IdempotencyInProgress)).
		Delete(&RecordDTO{}).Error
}
