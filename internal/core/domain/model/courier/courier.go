package courier

import (
	"errors"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

const (
	// DefaultVehicle is assigned when a courier registers without a vehicle type.
	DefaultVehicle = "moto"

	// DefaultRating is the rating of a courier without reviews.
	DefaultRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Profile is the registration data of a courier.
type Profile struct {
	Name    string
	Phone   string
	TaxID   string
	Email   string
	Vehicle string
	Plate   string
	License string
	PixKey  string
}

// Courier represents a delivery agent fulfilling routes.
//
// Key responsibilities:
//   - Tracking availability for route assembly (available, on_route, offline, blocked)
//   - Holding the last reported GPS position
//   - Accumulating the delivery counter and balance credited on each confirmed delivery
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and phone
//   - Only available couriers can be put on a new route
//   - Balance only grows through CreditDelivery
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), courier.Profile{Name: "João", Phone: "11 99999-0000"})
//	if err != nil {
//	    return err
//	}
//	err = c.StartRoute()
type Courier struct {
	id      kernel.UUID
	profile Profile
	status  Status

	position  *kernel.GeoPoint
	lastGPSAt *time.Time

	totalDeliveries int
	balance         kernel.Money
	rating          float64

	// version is the optimistic concurrency token loaded from persistence.
	version int64

	guard guard.ConstructorGuard
}

// NewCourier creates an available courier with zero balance.
//
// Parameters:
//   - id: Unique identifier for the courier
//   - profile: Registration data, Name and Phone are required; Vehicle defaults to DefaultVehicle
//
// Returns:
//   - *Courier: A courier ready to be assigned to routes
//   - error: Joined validation errors
func NewCourier(id kernel.UUID, profile Profile) (*Courier, error) {
	c := &Courier{
		status:  Available,
		balance: kernel.ZeroMoney(),
		rating:  DefaultRating,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setProfile(profile),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// State is the persisted representation used by RestoreCourier.
type State struct {
	ID              kernel.UUID
	Profile         Profile
	Status          Status
	Position        *kernel.GeoPoint
	LastGPSAt       *time.Time
	TotalDeliveries int
	Balance         kernel.Money
	Rating          float64
	Version         int64
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(s State) (*Courier, error) {
	c := &Courier{
		profile:         s.Profile,
		status:          s.Status,
		position:        s.Position,
		lastGPSAt:       s.LastGPSAt,
		totalDeliveries: s.TotalDeliveries,
		balance:         s.Balance,
		rating:          s.Rating,
		version:         s.Version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(s.ID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the courier was created via a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Profile() Profile {
	return c.profile
}

func (c *Courier) Name() string {
	return c.profile.Name
}

func (c *Courier) Status() Status {
	return c.status
}

// Position returns the last reported position, nil before the first GPS ping.
func (c *Courier) Position() *kernel.GeoPoint {
	return c.position
}

func (c *Courier) LastGPSAt() *time.Time {
	return c.lastGPSAt
}

func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

func (c *Courier) Balance() kernel.Money {
	return c.balance
}

func (c *Courier) Rating() float64 {
	return c.rating
}

func (c *Courier) Version() int64 {
	return c.version
}

// State returns a snapshot for persistence adapters.
func (c *Courier) State() State {
	return State{
		ID:              c.id,
		Profile:         c.profile,
		Status:          c.status,
		Position:        c.position,
		LastGPSAt:       c.lastGPSAt,
		TotalDeliveries: c.totalDeliveries,
		Balance:         c.balance,
		Rating:          c.rating,
		Version:         c.version,
	}
}

// ChangeStatus sets the status reported by an operator or the courier app.
func (c *Courier) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

// StartRoute moves an available courier to on_route.
func (c *Courier) StartRoute() error {
	if c.status != Available {
		return errs.NewConflictError("courier", "is "+c.status.String()+", expected available")
	}
	c.status = OnRoute
	return nil
}

// FinishRoute releases the courier back to available.
func (c *Courier) FinishRoute() {
	c.status = Available
}

// CreditDelivery counts one confirmed delivery and adds its fee to the balance.
func (c *Courier) CreditDelivery(fee kernel.Money) {
	c.totalDeliveries++
	c.balance = c.balance.Add(fee)
}

// RecordPosition stores the latest GPS fix.
func (c *Courier) RecordPosition(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	ts := at.UTC()
	c.position = &point
	c.lastGPSAt = &ts
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)

	var err error
	if p.Name == "" {
		err = errors.Join(err, ErrNameIsRequired)
	}
	if p.Phone == "" {
		err = errors.Join(err, ErrPhoneIsRequired)
	}
	if err != nil {
		return err
	}

	if p.Vehicle == "" {
		p.Vehicle = DefaultVehicle
	}
	c.profile = p
	return nil
}
