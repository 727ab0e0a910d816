package commands

import (
	"errors"

	"montarota/internal/core/domain/model/courier"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrChangeCourierStatusCommandIsNotConstructed = errors.New(
		"ChangeCourierStatusCommand must be created via NewChangeCourierStatusCommand constructor",
	)
	ErrRecordCourierPositionCommandIsNotConstructed = errors.New(
		"RecordCourierPositionCommand must be created via NewRecordCourierPositionCommand constructor",
	)
)

type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	profile   courier.Profile
	guard     guard.ConstructorGuard
}

func NewCreateCourierCommand(courierID kernel.UUID, profile courier.Profile) (CreateCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return CreateCourierCommand{}, err
	}
	return CreateCourierCommand{courierID: courierID, profile: profile, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Profile() courier.Profile {
	return c.profile
}

type ChangeCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	status    courier.Status
	guard     guard.ConstructorGuard
}

// NewChangeCourierStatusCommand accepts available, on_route, offline or blocked.
func NewChangeCourierStatusCommand(courierID kernel.UUID, status string) (ChangeCourierStatusCommand, error) {
	parsed, statusErr := courier.ParseStatus(status)
	if err := errors.Join(courierID.Validate(), statusErr); err != nil {
		return ChangeCourierStatusCommand{}, err
	}
	return ChangeCourierStatusCommand{courierID: courierID, status: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeCourierStatusCommandIsNotConstructed)
}

func (c ChangeCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c ChangeCourierStatusCommand) Status() courier.Status {
	return c.status
}

// RecordCourierPositionCommand carries one GPS fix. Coordinates are validated by
// the handler when the ping is built so a missing pair reports MissingCoordinates.
type RecordCourierPositionCommand struct { //nolint:recvcheck //using for validation
	pingID    kernel.UUID
	courierID kernel.UUID
	lat       *float64
	lng       *float64
	speedKmh  *float64
	accuracyM *float64
	guard     guard.ConstructorGuard
}

func NewRecordCourierPositionCommand(
	pingID, courierID kernel.UUID,
	lat, lng, speedKmh, accuracyM *float64,
) (RecordCourierPositionCommand, error) {
	if err := errors.Join(pingID.Validate(), courierID.Validate()); err != nil {
		return RecordCourierPositionCommand{}, err
	}
	return RecordCourierPositionCommand{
		pingID:    pingID,
		courierID: courierID,
		lat:       lat,
		lng:       lng,
		speedKmh:  speedKmh,
		accuracyM: accuracyM,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordCourierPositionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCourierPositionCommandIsNotConstructed)
}

func (c RecordCourierPositionCommand) PingID() kernel.UUID {
	return c.pingID
}

func (c RecordCourierPositionCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c RecordCourierPositionCommand) Coordinates() (lat, lng *float64) {
	return c.lat, c.lng
}

func (c RecordCourierPositionCommand) SpeedKmh() *float64 {
	return c.speedKmh
}

func (c RecordCourierPositionCommand) AccuracyM() *float64 {
	return c.accuracyM
}
