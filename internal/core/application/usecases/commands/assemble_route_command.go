package commands

import (
	"errors"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/route"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrAssembleRouteCommandIsNotConstructed = errors.New(
		"AssembleRouteCommand must be created via NewAssembleRouteCommand constructor",
	)
	ErrCourierIDIsRequired = errs.NewValueIsRequiredError("courier_id")
)

// AssembleRouteCommand batches pending orders under one courier. Stops keep the
// order of orderIDs.
//
// Example:
//
//	cmd, err := NewAssembleRouteCommand(kernel.NewUUID(), courierID,
//	    []kernel.UUID{o1, o2}, "Rua da Loja, 1")
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	fmt.Println(res.Route.Links().GoogleMaps)
type AssembleRouteCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	courierID kernel.UUID
	orderIDs  []kernel.UUID
	origin    string

	guard guard.ConstructorGuard
}

func NewAssembleRouteCommand(
	routeID, courierID kernel.UUID,
	orderIDs []kernel.UUID,
	origin string,
) (AssembleRouteCommand, error) {
	var courierErr error
	if courierID.Validate() != nil {
		courierErr = ErrCourierIDIsRequired
	}

	if err := errors.Join(routeID.Validate(), courierErr, route.ValidateOrderIDs(orderIDs)); err != nil {
		return AssembleRouteCommand{}, err
	}

	return AssembleRouteCommand{
		routeID:   routeID,
		courierID: courierID,
		orderIDs:  append([]kernel.UUID(nil), orderIDs...),
		origin:    strings.TrimSpace(origin),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssembleRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssembleRouteCommandIsNotConstructed)
}

func (c AssembleRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c AssembleRouteCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c AssembleRouteCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c AssembleRouteCommand) Origin() string {
	return c.origin
}
