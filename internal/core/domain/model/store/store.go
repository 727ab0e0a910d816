// Package store provides the Store aggregate: the merchant account that
// originates orders and pays a flat platform fee per delivery.
package store

import (
	"errors"
	"fmt"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
)

// Status of a merchant account. Only active stores are listed and settled.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Active, Inactive:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid store status", s))
	}
}

// Profile is the registration data of a store.
type Profile struct {
	Name         string
	TaxID        string
	Phone        string
	Address      string
	Neighborhood string
	City         string
	PostalCode   string
	ContactName  string
	Email        string
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Name         *string
	TaxID        *string
	Phone        *string
	Address      *string
	Neighborhood *string
	City         *string
	PostalCode   *string
	ContactName  *string
	Email        *string
	PlatformFee  *kernel.Money
	Status       *Status
}

// Store is a merchant account.
type Store struct {
	id          kernel.UUID
	profile     Profile
	platformFee kernel.Money
	status      Status
	guard       guard.ConstructorGuard
}

// NewStore creates an active store. A zero fee falls back to kernel.DefaultPlatformFee.
func NewStore(id kernel.UUID, profile Profile, fee kernel.Money) (*Store, error) {
	s := &Store{
		platformFee: fee.OrDefault(kernel.DefaultPlatformFee),
		status:      Active,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(s.setID(id), s.setProfile(profile)); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreStore rebuilds a store loaded from persistence.
func RestoreStore(id kernel.UUID, profile Profile, fee kernel.Money, status Status) (*Store, error) {
	s := &Store{
		profile:     profile,
		platformFee: fee,
		guard:       guard.NewConstructorGuard(),
	}

	parsed, statusErr := ParseStatus(string(status))
	if err := errors.Join(s.setID(id), statusErr); err != nil {
		return nil, err
	}
	s.status = parsed
	return s, nil
}

func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) ID() kernel.UUID {
	return s.id
}

func (s *Store) Profile() Profile {
	return s.profile
}

func (s *Store) PlatformFee() kernel.Money {
	return s.platformFee
}

func (s *Store) Status() Status {
	return s.status
}

func (s *Store) IsActive() bool {
	return s.status == Active
}

// Apply updates the fields present in p. The name cannot be blanked.
func (s *Store) Apply(p Patch) error {
	next := s.profile
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&next.Name, p.Name)
	assign(&next.TaxID, p.TaxID)
	assign(&next.Phone, p.Phone)
	assign(&next.Address, p.Address)
	assign(&next.Neighborhood, p.Neighborhood)
	assign(&next.City, p.City)
	assign(&next.PostalCode, p.PostalCode)
	assign(&next.ContactName, p.ContactName)
	assign(&next.Email, p.Email)

	status := s.status
	if p.Status != nil {
		parsed, err := ParseStatus(string(*p.Status))
		if err != nil {
			return err
		}
		status = parsed
	}

	if err := s.setProfile(next); err != nil {
		return err
	}
	if p.PlatformFee != nil {
		s.platformFee = p.PlatformFee.OrDefault(kernel.DefaultPlatformFee)
	}
	s.status = status
	return nil
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameIsRequired
	}
	s.profile = p
	return nil
}
