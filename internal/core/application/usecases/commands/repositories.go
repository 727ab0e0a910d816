// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventRecorder queues domain events published after commit.
	EventRecorder interface {
		Record(evts ...events.Event)
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	OcrSlipRepoFactory interface {
		OcrSlipRepository() ports.OcrSlipRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		EventRecorder
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW covers delivery confirmation: the order and its courier.
	DeliveryUoW interface {
		TxManager
		EventRecorder
		OrderRepoFactory
		CourierRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// RouteUoW coordinates a route with its orders and courier.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r := uow.RouteRepository()
	//   o := uow.OrderRepository()
	//   c := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	RouteUoW interface {
		TxManager
		EventRecorder
		OrderRepoFactory
		CourierRepoFactory
		RouteRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// SettlementUoW reads delivered orders of a store and writes payments.
	SettlementUoW interface {
		TxManager
		EventRecorder
		OrderRepoFactory
		StoreRepoFactory
		PaymentRepoFactory
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	// PaymentUoW manages transactions for payment-only operations.
	PaymentUoW interface {
		TxManager
		EventRecorder
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		EventRecorder
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// TrackingUoW updates a courier position and appends its GPS ping.
	TrackingUoW interface {
		TxManager
		EventRecorder
		CourierRepoFactory
		TrackingRepoFactory
	}

	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	StoreUoW interface {
		TxManager
		StoreRepoFactory
	}

	StoreUoWFactory interface {
		Create() StoreUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	OcrUoW interface {
		TxManager
		OcrSlipRepoFactory
	}

	OcrUoWFactory interface {
		Create() OcrUoW
	}
)

// Clock returns the current time; handlers take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}
