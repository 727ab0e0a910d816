package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"montarota/internal/adapters/out/postgres/orderrepo"
	"montarota/internal/adapters/out/postgres/pgtest"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Container
	repository *orderrepo.GormOrderRepository
	storeID    kernel.UUID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.StartPostgres(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB)
	suite.storeID = kernel.NewUUID()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	ctx := context.Background()
	value := kernel.MustMoney("57.90")
	change := kernel.MustMoney("100.00")
	code, err := order.NewConfirmationCode(482913)
	suite.Require().NoError(err)

	original, err := order.NewOrder(kernel.NewUUID(), suite.storeID,
		order.Customer{
			Name:         "Ana",
			Phone:        "(11) 98765-4321",
			Address:      "Rua Augusta, 500",
			Neighborhood: "Consolação",
			City:         "São Paulo",
			PostalCode:   "01305-000",
			Complement:   "apto 12",
		},
		order.Details{
			Items:              "2x pizza",
			OrderValue:         &value,
			PaymentMethod:      "cash",
			ChangeFor:          &change,
			Notes:              "ring twice",
			PreparationMinutes: 15,
		},
		kernel.DefaultPlatformFee, code, baseTime)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), loaded.ID())
	suite.Equal(suite.storeID, loaded.StoreID())
	suite.Nil(loaded.Courier())
	suite.Equal(original.Customer(), loaded.Customer())
	suite.Equal("2x pizza", loaded.Details().Items)
	suite.Require().NotNil(loaded.Details().OrderValue)
	suite.True(value.Equal(*loaded.Details().OrderValue))
	suite.Require().NotNil(loaded.Details().ChangeFor)
	suite.True(change.Equal(*loaded.Details().ChangeFor))
	suite.Equal(order.DefaultOrigin, loaded.Details().Origin)
	suite.True(kernel.DefaultPlatformFee.Equal(loaded.PlatformFee()))
	suite.Equal("482913", loaded.Code().String())
	suite.Equal(order.Pending, loaded.Status())
	suite.WithinDuration(baseTime.Add(35*time.Minute), loaded.ExpectedDeliveryAt(), time.Microsecond)
	suite.Equal(int64(0), loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	loaded, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(loaded)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndStampsStatus() {
	ctx := context.Background()
	o := suite.addOrder(baseTime)

	suite.Require().NoError(o.AssignToRoute(kernel.NewUUID(), baseTime.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.NotNil(loaded.Courier())
	suite.Require().NotNil(loaded.AcceptedAt())
	suite.Equal(int64(1), loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleCopy_ReturnsConcurrentModification() {
	ctx := context.Background()
	o := suite.addOrder(baseTime)

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(order.Accepted, baseTime))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(order.Cancelled, baseTime))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.newOrder(baseTime)

	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListDeliveredForStore_FiltersByStoreStatusAndWindow() {
	ctx := context.Background()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 7)

	inside := suite.addDelivered(from.Add(10 * time.Hour))
	lastMinute := suite.addDelivered(until.Add(-time.Minute))
	suite.addDelivered(until)
	suite.addDelivered(from.Add(-time.Second))
	suite.addOrder(from.Add(time.Hour))

	otherStore := suite.storeID
	suite.storeID = kernel.NewUUID()
	suite.addDelivered(from.Add(time.Hour))
	suite.storeID = otherStore

	orders, err := suite.repository.ListDeliveredForStore(ctx, suite.storeID, from, until)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(inside.ID(), orders[0].ID())
	suite.Equal(lastMinute.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	code, err := order.NewConfirmationCode(123456)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), suite.storeID,
		order.Customer{Address: "Rua A, 1"}, order.Details{}, kernel.DefaultPlatformFee, code, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(createdAt time.Time) *order.Order {
	o := suite.newOrder(createdAt)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addDelivered(createdAt time.Time) *order.Order {
	o := suite.newOrder(createdAt)
	suite.Require().NoError(o.Confirm("123456", createdAt))
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
