package queries_test

import (
	"context"
	"testing"
	"time"

	"montarota/internal/adapters/out/postgres/courierrepo"
	"montarota/internal/adapters/out/postgres/orderrepo"
	"montarota/internal/adapters/out/postgres/pgtest"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type seeder struct {
	t        *testing.T
	db       *gorm.DB
	orders   *orderrepo.GormOrderRepository
	couriers *courierrepo.GormCourierRepository
}

func newSeeder(t *testing.T) *seeder {
	db := pgtest.NewSQLite(t)
	return &seeder{
		t:        t,
		db:       db,
		orders:   orderrepo.NewGormOrderRepository(db),
		couriers: courierrepo.NewGormCourierRepository(db),
	}
}

func (s *seeder) order(storeID kernel.UUID, neighborhood string, createdAt time.Time) *order.Order {
	s.t.Helper()
	code, err := order.NewConfirmationCode(111111)
	require.NoError(s.t, err)
	o, err := order.NewOrder(kernel.NewUUID(), storeID,
		order.Customer{Address: "Rua A, 1", Neighborhood: neighborhood},
		order.Details{}, kernel.DefaultPlatformFee, code, createdAt)
	require.NoError(s.t, err)
	require.NoError(s.t, s.orders.Add(context.Background(), o))
	return o
}

func (s *seeder) delivered(storeID kernel.UUID, neighborhood string, createdAt time.Time) *order.Order {
	s.t.Helper()
	code, err := order.NewConfirmationCode(111111)
	require.NoError(s.t, err)
	o, err := order.NewOrder(kernel.NewUUID(), storeID,
		order.Customer{Address: "Rua A, 1", Neighborhood: neighborhood},
		order.Details{}, kernel.DefaultPlatformFee, code, createdAt)
	require.NoError(s.t, err)
	require.NoError(s.t, o.Confirm("111111", createdAt.Add(30*time.Minute)))
	require.NoError(s.t, s.orders.Add(context.Background(), o))
	return o
}

func (s *seeder) courier(name string, status courier.Status, rating float64) *courier.Courier {
	s.t.Helper()
	c, err := courier.RestoreCourier(courier.State{
		ID:      kernel.NewUUID(),
		Profile: courier.Profile{Name: name, Phone: "11999990000", Vehicle: courier.DefaultVehicle},
		Status:  status,
		Balance: kernel.ZeroMoney(),
		Rating:  rating,
	})
	require.NoError(s.t, err)
	require.NoError(s.t, s.couriers.Add(context.Background(), c))
	return c
}
