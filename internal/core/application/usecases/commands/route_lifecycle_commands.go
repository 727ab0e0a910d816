package commands

import (
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/guard"
)

var (
	ErrStartRouteCommandIsNotConstructed = errors.New(
		"StartRouteCommand must be created via NewStartRouteCommand constructor",
	)
	ErrCompleteRouteCommandIsNotConstructed = errors.New(
		"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
	)
)

type StartRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewStartRouteCommand(routeID kernel.UUID) (StartRouteCommand, error) {
	if err := routeID.Validate(); err != nil {
		return StartRouteCommand{}, err
	}
	return StartRouteCommand{routeID: routeID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

func (c StartRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

type CompleteRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewCompleteRouteCommand(routeID kernel.UUID) (CompleteRouteCommand, error) {
	if err := routeID.Validate(); err != nil {
		return CompleteRouteCommand{}, err
	}
	return CompleteRouteCommand{routeID: routeID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

func (c CompleteRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}
