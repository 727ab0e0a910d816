package commands_test

import (
	"context"
	"testing"
	"time"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/ocr"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/payment"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/core/domain/model/tracking"
	"montarota/internal/core/domain/model/user"
	"montarota/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// factoryOf adapts a single mock unit of work to any of the segregated factories.
type factoryFunc[T any] func() T

func (f factoryFunc[T]) Create() T {
	return f()
}

func factoryOf[T any](uow T) factoryFunc[T] {
	return func() T { return uow }
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredForStore(
	ctx context.Context,
	storeID kernel.UUID,
	from, until time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, storeID, from, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) ListActive(ctx context.Context) ([]*store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, p *tracking.Ping) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockOcrSlipRepository struct{ mock.Mock }

func (m *MockOcrSlipRepository) Add(ctx context.Context, s *ocr.Slip) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockUoW satisfies every segregated unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Record(evts ...events.Event) {
	m.Called(evts)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) StoreRepository() ports.StoreRepository {
	args := m.Called()
	return args.Get(0).(ports.StoreRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) OcrSlipRepository() ports.OcrSlipRepository {
	args := m.Called()
	return args.Get(0).(ports.OcrSlipRepository)
}

// expectRecorded captures every event passed to Record.
func expectRecorded(uow *MockUoW) *[]events.Event {
	var recorded []events.Event
	uow.On("Record", mock.Anything).Run(func(args mock.Arguments) {
		recorded = append(recorded, args.Get(0).([]events.Event)...)
	})
	return &recorded
}

func newPendingOrder(t *testing.T, storeID kernel.UUID, address string, code int) *order.Order {
	t.Helper()
	c, err := order.NewConfirmationCode(code)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), storeID,
		order.Customer{Name: "Ana", Address: address, Neighborhood: "Centro"},
		order.Details{}, kernel.DefaultPlatformFee, c, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func newAvailableCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), courier.Profile{Name: "João", Phone: "11 99999-0000"})
	require.NoError(t, err)
	return c
}

// reload returns an independent copy, like a second read from the database.
func reload(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	copied, err := order.RestoreOrder(o.State())
	require.NoError(t, err)
	return copied
}

func reloadCourier(t *testing.T, c *courier.Courier) *courier.Courier {
	t.Helper()
	copied, err := courier.RestoreCourier(c.State())
	require.NoError(t, err)
	return copied
}
