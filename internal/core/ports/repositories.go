// Package ports defines the contracts between the domain/application layers and
// infrastructure: repositories bound to a unit of work, event publishing,
// credential handling and idempotency storage.
package ports

import (
	"context"
	"time"

	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/core/domain/model/tracking"
	"montarota/internal/core/domain/model/user"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditional on the
	// version the aggregate was loaded with and fails with
	// errs.ErrConcurrentModification when another transaction updated it first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredForStore returns the store's delivered orders created in [from, until).
	ListDeliveredForStore(ctx context.Context, storeID kernel.UUID, from, until time.Time) ([]*order.Order, error)
}

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update is version-checked like OrderRepository.Update.
	Update(ctx context.Context, aggregate *courier.Courier) error

	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}

type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Route) error
	Update(ctx context.Context, aggregate *route.Route) error
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}

type StoreRepository interface {
	Add(ctx context.Context, aggregate *store.Store) error
	Update(ctx context.Context, aggregate *store.Store) error
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)

	// ListActive returns active stores ordered by name.
	ListActive(ctx context.Context) ([]*store.Store, error)
}

type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)
}

type UserRepository interface {
	// Add fails with errs.ErrConflict when the email is already registered.
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error

	// GetByEmail looks the user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// TrackingRepository appends GPS pings; pings are never updated or deleted.
type TrackingRepository interface {
	Add(ctx context.Context, ping *tracking.Ping) error
}

type OcrSlipRepository interface {
	Add(ctx context.Context, slip *ocr.Slip) error
}
