package ports

import (
	"context"

	"montarota/internal/core/domain/events"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin share its transaction. Events recorded during
// the transaction are published only after a successful Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and publishes recorded events.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops recorded events.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Record queues domain events for publication after commit.
	Record(evts ...events.Event)

	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
	RouteRepository() RouteRepository
	StoreRepository() StoreRepository
	PaymentRepository() PaymentRepository
	UserRepository() UserRepository
	TrackingRepository() TrackingRepository
	OcrSlipRepository() OcrSlipRepository
}

// EventPublisher delivers committed domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.Event) error
}
