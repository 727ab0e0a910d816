package commands

import (
	"context"

	"montarota/internal/core/domain/events"
	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/tracking"
)

type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{uowFactory: uowFactory}
}

func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := courier.NewCourier(cmd.CourierID(), cmd.Profile())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeCourierStatusCommandHandler sets the status reported by an operator.
type ChangeCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
	now        Clock
}

func NewChangeCourierStatusCommandHandler(uowFactory CourierUoWFactory, now Clock) ChangeCourierStatusCommandHandler {
	return ChangeCourierStatusCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

func (h *ChangeCourierStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeCourierStatusCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (*courier.Courier, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.CourierRepository()
		c, err := repo.Get(ctx, cmd.CourierID())
		if err != nil {
			return nil, err
		}

		from := c.Status()
		if err = c.ChangeStatus(cmd.Status()); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, c); err != nil {
			return nil, err
		}

		uow.Record(events.CourierStatusChanged{
			CourierID: c.ID().String(),
			From:      from.String(),
			To:        c.Status().String(),
			At:        h.now(),
		})

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// RecordCourierPositionCommandHandler updates the courier's last position and
// appends the ping in the same transaction.
type RecordCourierPositionCommandHandler struct {
	uowFactory TrackingUoWFactory
	now        Clock
}

func NewRecordCourierPositionCommandHandler(
	uowFactory TrackingUoWFactory,
	now Clock,
) RecordCourierPositionCommandHandler {
	return RecordCourierPositionCommandHandler{uowFactory: uowFactory, now: clockOrSystem(now)}
}

func (h *RecordCourierPositionCommandHandler) Handle(
	ctx context.Context,
	cmd RecordCourierPositionCommand,
) (*tracking.Ping, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lat, lng := cmd.Coordinates()
	ping, err := tracking.NewPing(cmd.PingID(), cmd.CourierID(), lat, lng, cmd.SpeedKmh(), cmd.AccuracyM(), h.now())
	if err != nil {
		return nil, err
	}

	return withConcurrencyRetry(ctx, func(ctx context.Context) (*tracking.Ping, error) {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		courierRepo := uow.CourierRepository()
		c, err := courierRepo.Get(ctx, cmd.CourierID())
		if err != nil {
			return nil, err
		}

		if err = c.RecordPosition(ping.Point(), ping.CreatedAt()); err != nil {
			return nil, err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return nil, err
		}
		if err = uow.TrackingRepository().Add(ctx, ping); err != nil {
			return nil, err
		}

		uow.Record(events.CourierPositionRecorded{
			CourierID: c.ID().String(),
			Lat:       ping.Point().Lat(),
			Lng:       ping.Point().Lng(),
			SpeedKmh:  ping.SpeedKmh(),
			AccuracyM: ping.AccuracyM(),
			At:        ping.CreatedAt(),
		})

		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return ping, nil
	})
}
