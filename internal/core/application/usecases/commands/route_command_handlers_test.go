package commands_test

import (
	"testing"

	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/order"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/core/domain/services"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAssembleRouteCommand_Validation(t *testing.T) {
	dup := kernel.NewUUID()

	tests := []struct {
		name      string
		courierID kernel.UUID
		orderIDs  []kernel.UUID
		wantErr   error
	}{
		{"missing courier", kernel.UUID{}, []kernel.UUID{kernel.NewUUID()}, commands.ErrCourierIDIsRequired},
		{"no orders", kernel.NewUUID(), nil, route.ErrOrdersAreRequired},
		{"duplicate order", kernel.NewUUID(), []kernel.UUID{dup, dup}, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), tt.courierID, tt.orderIDs, "")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAssembleRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	c := newAvailableCourier(t)
	first := newPendingOrder(t, storeID, "Rua A, 123", 111111)
	second := newPendingOrder(t, storeID, "Rua B, 45", 222222)

	cmd, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), c.ID(), []kernel.UUID{first.ID(), second.ID()}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	recorded := expectRecorded(uow)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		orderRepo.On("Get", ctx, first.ID()).Return(first, nil).Once(),
		orderRepo.On("Get", ctx, second.ID()).Return(second, nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once(),
		orderRepo.On("Update", ctx, first).Return(nil).Once(),
		orderRepo.On("Update", ctx, second).Return(nil).Once(),
		courierRepo.On("Update", ctx, c).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssembleRouteCommandHandler(
		factoryOf[commands.RouteUoW](uow), services.NewRouteLinkBuilder(), kernel.ZeroMoney(), fixedClock,
	)
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.Pending, res.Route.Status())
	assert.Equal(t, 2, res.Route.OrderCount())
	assert.Equal(t, "9.00", res.Route.TotalFee().String())
	assert.Equal(t,
		"https://www.google.com/maps/dir/origin/Rua%20A%2C%20123/Rua%20B%2C%2045",
		res.Route.Links().GoogleMaps)
	assert.Equal(t, "https://waze.com/ul?q=Rua%20A%2C%20123&navigate=yes", res.Route.Links().Waze)
	assert.Equal(t, courier.OnRoute, res.Courier.Status())
	for _, o := range res.Orders {
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.Courier())
		assert.Equal(t, c.ID(), *o.Courier())
		assert.NotNil(t, o.AcceptedAt())
	}
	require.Len(t, *recorded, 1)
	assert.Equal(t, events.RouteAssembledName, (*recorded)[0].Name())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
}

func TestAssembleRouteCommandHandler_Handle_OrderNotPending(t *testing.T) {
	ctx := t.Context()
	c := newAvailableCourier(t)
	o := newPendingOrder(t, kernel.NewUUID(), "Rua A, 123", 111111)
	require.NoError(t, o.ChangeStatus(order.Cancelled, fixedNow))

	cmd, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), c.ID(), []kernel.UUID{o.ID()}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAssembleRouteCommandHandler(
		factoryOf[commands.RouteUoW](uow), services.NewRouteLinkBuilder(), kernel.ZeroMoney(), fixedClock,
	)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, courier.Available, c.Status())
	uow.AssertNotCalled(t, "RouteRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssembleRouteCommandHandler_Handle_CourierNotAvailable(t *testing.T) {
	ctx := t.Context()
	c := newAvailableCourier(t)
	require.NoError(t, c.ChangeStatus(courier.Offline))
	o := newPendingOrder(t, kernel.NewUUID(), "Rua A, 123", 111111)

	cmd, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), c.ID(), []kernel.UUID{o.ID()}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAssembleRouteCommandHandler(
		factoryOf[commands.RouteUoW](uow), services.NewRouteLinkBuilder(), kernel.ZeroMoney(), fixedClock,
	)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssembleRouteCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	c := newAvailableCourier(t)
	missing := kernel.NewUUID()

	cmd, err := commands.NewAssembleRouteCommand(kernel.NewUUID(), c.ID(), []kernel.UUID{missing}, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
	orderRepo.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("order", missing)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAssembleRouteCommandHandler(
		factoryOf[commands.RouteUoW](uow), services.NewRouteLinkBuilder(), kernel.ZeroMoney(), fixedClock,
	)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func newPendingRoute(t *testing.T, courierID kernel.UUID) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.NewUUID(), courierID, []kernel.UUID{kernel.NewUUID()},
		route.Links{}, kernel.DefaultPlatformFee, fixedNow)
	require.NoError(t, err)
	return r
}

func TestStartRouteCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	r := newPendingRoute(t, kernel.NewUUID())
	cmd, err := commands.NewStartRouteCommand(r.ID())
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	expectRecorded(uow)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	routeRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
	routeRepo.On("Update", ctx, r).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewStartRouteCommandHandler(factoryOf[commands.RouteUoW](uow), fixedClock)
	started, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.InProgress, started.Status())
	require.NotNil(t, started.StartedAt())
	assert.Equal(t, fixedNow, *started.StartedAt())

	// a second start is rejected
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RouteRepository").Return(routeRepo).Once()
	routeRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestCompleteRouteCommandHandler_Handle_ReleasesCourier(t *testing.T) {
	ctx := t.Context()
	c := newAvailableCourier(t)
	require.NoError(t, c.StartRoute())
	r := newPendingRoute(t, c.ID())
	cmd, err := commands.NewCompleteRouteCommand(r.ID())
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	recorded := expectRecorded(uow)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		routeRepo.On("Update", ctx, r).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		courierRepo.On("Update", ctx, c).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCompleteRouteCommandHandler(factoryOf[commands.RouteUoW](uow), fixedClock)
	completed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, route.Completed, completed.Status())
	assert.NotNil(t, completed.CompletedAt())
	assert.Equal(t, courier.Available, c.Status())
	require.Len(t, *recorded, 1)
	assert.Equal(t, events.RouteCompletedName, (*recorded)[0].Name())
	uow.AssertExpectations(t)
}
