// Package user provides the User aggregate and the Principal carried by
// authenticated requests.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrEmailIsRequired        = errs.NewValueIsRequiredError("email")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password")
	ErrUserIsNotConstructed   = errors.New("User must be created via NewUser constructor")
	ErrUserIsInactive         = errs.NewUnauthorizedError("user is not active")
)

// Role decides which operations a principal may perform.
type Role string

const (
	RoleStore   Role = "store"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"
)

// ParseRole accepts "store", "courier" or "admin"; empty input defaults to RoleStore.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleStore, nil
	case RoleStore, RoleCourier, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

// NormalizeEmail lower-cases and trims an address; emails are unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is an account able to log in.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	status       Status
	storeID      *kernel.UUID
	courierID    *kernel.UUID
	lastLoginAt  *time.Time
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewUser creates an active user. passwordHash must already be hashed.
func NewUser(
	id kernel.UUID,
	name, email, passwordHash string,
	role Role,
	storeID, courierID *kernel.UUID,
	now time.Time,
) (*User, error) {
	u := &User{
		status:    Active,
		storeID:   storeID,
		courierID: courierID,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// State is the persisted representation used by RestoreUser.
type State struct {
	ID           kernel.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	StoreID      *kernel.UUID
	CourierID    *kernel.UUID
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

func RestoreUser(s State) (*User, error) {
	u := &User{
		name:         s.Name,
		email:        s.Email,
		passwordHash: s.PasswordHash,
		status:       s.Status,
		storeID:      s.StoreID,
		courierID:    s.CourierID,
		lastLoginAt:  s.LastLoginAt,
		createdAt:    s.CreatedAt,
		guard:        guard.NewConstructorGuard(),
	}
	if err := errors.Join(u.setID(s.ID), u.setRole(s.Role)); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) Status() Status {
	return u.status
}

func (u *User) StoreID() *kernel.UUID {
	return u.storeID
}

func (u *User) CourierID() *kernel.UUID {
	return u.courierID
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) State() State {
	return State{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email,
		PasswordHash: u.passwordHash,
		Role:         u.role,
		Status:       u.status,
		StoreID:      u.storeID,
		CourierID:    u.courierID,
		LastLoginAt:  u.lastLoginAt,
		CreatedAt:    u.createdAt,
	}
}

func (u *User) IsActive() bool {
	return u.status == Active
}

// RecordLogin stamps the last successful login. Inactive users cannot log in.
func (u *User) RecordLogin(now time.Time) error {
	if !u.IsActive() {
		return ErrUserIsInactive
	}
	ts := now.UTC()
	u.lastLoginAt = &ts
	return nil
}

// Principal returns the identity embedded into access tokens.
func (u *User) Principal() Principal {
	return Principal{
		UserID:    u.id,
		Email:     u.email,
		Role:      u.role,
		StoreID:   u.storeID,
		CourierID: u.courierID,
	}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	if at := strings.IndexByte(email, '@'); at <= 0 || at == len(email)-1 {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	parsed, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	u.role = parsed
	return nil
}
