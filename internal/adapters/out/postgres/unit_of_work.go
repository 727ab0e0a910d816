// Package postgres provides the GORM implementation of the Unit of Work pattern.
// A unit of work spans one business transaction: repositories obtained from it
// after Begin share the transaction, and domain events recorded while it is open
// are handed to the EventPublisher only after Commit succeeds.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	uow.Record(events.OrderDelivered{...})
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op returning gorm.ErrInvalidTransaction,
// so the deferred call is safe.
//
// Each UnitOfWork instance belongs to one goroutine; concurrent operations must
// use separate instances.
package postgres

import (
	"context"
	"log/slog"

	"montarota/internal/adapters/out/postgres/courierrepo"
	"montarota/internal/adapters/out/postgres/ocrrepo"
	"montarota/internal/adapters/out/postgres/orderrepo"
	"montarota/internal/adapters/out/postgres/paymentrepo"
	"montarota/internal/adapters/out/postgres/routerepo"
	"montarota/internal/adapters/out/postgres/storerepo"
	"montarota/internal/adapters/out/postgres/trackingrepo"
	"montarota/internal/adapters/out/postgres/userrepo"
	"montarota/internal/core/domain/events"
	"montarota/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
//
// Example:
//
//	db, err := postgres.Open(cfg)
//	if err != nil {
//	    log.Fatalf("failed to connect database: %v", err)
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db, publisher, logger)
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory returns a factory. A nil publisher discards events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one database transaction and the events it produces.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	pending   []events.Event
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// Begin starts a transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes recorded events.
// Publication failures are logged; the committed state is not undone.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.pending = nil
		return err
	}

	evts := uow.pending
	uow.pending = nil
	if len(evts) == 0 || uow.publisher == nil {
		return nil
	}
	if pubErr := uow.publisher.Publish(ctx, evts...); pubErr != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events",
			"count", len(evts),
			"error", pubErr)
	}
	return nil
}

// Rollback discards the transaction and every recorded event.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.pending = nil
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Record queues events until Commit.
func (uow *GormUnitOfWork) Record(evts ...events.Event) {
	uow.pending = append(uow.pending, evts...)
}

// conn returns the active transaction, or the pool when none was begun.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn())
}

func (uow *GormUnitOfWork) StoreRepository() ports.StoreRepository {
	return storerepo.NewGormStoreRepository(uow.conn())
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) TrackingRepository() ports.TrackingRepository {
	return trackingrepo.NewGormTrackingRepository(uow.conn())
}

func (uow *GormUnitOfWork) OcrSlipRepository() ports.OcrSlipRepository {
	return ocrrepo.NewGormOcrSlipRepository(uow.conn())
}
