package ports

import (
	"context"
	"time"
)

type IdempotencyStatus string

const (
	IdempotencyInProgress IdempotencyStatus = "in_progress"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord is the stored outcome of a request carrying an Idempotency-Key.
type IdempotencyRecord struct {
	Key            string
	Fingerprint    string
	Status         IdempotencyStatus
	ResponseStatus int
	ResponseBody   []byte
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// IdempotencyStore keeps request outcomes so retried requests are not re-executed.
type IdempotencyStore interface {
	// Reserve atomically creates an in-progress record for key. When a live record
	// already exists it is returned with created=false and nothing is written.
	Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (record *IdempotencyRecord, created bool, err error)

	// Complete stores the response of the request that reserved key.
	Complete(ctx context.Context, key string, status int, body []byte) error

	// Release drops a reservation whose request failed unexpectedly so it can be retried.
	Release(ctx context.Context, key string) error
}
