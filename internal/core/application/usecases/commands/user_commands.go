package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/user"
	"montarota/internal/core/ports"
	"montarota/internal/pkg/errs"
	"montarota/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")
	ErrPasswordIsRequired           = errs.NewValueIsRequiredError("password")
	ErrInvalidCredentials           = errs.NewUnauthorizedError("invalid credentials")
)

type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	name      string
	email     string
	password  string
	role      user.Role
	storeID   *kernel.UUID
	courierID *kernel.UUID
	guard     guard.ConstructorGuard
}

// NewRegisterUserCommand requires name, email and password. An empty role means store.
func NewRegisterUserCommand(
	userID kernel.UUID,
	name, email, password, role string,
	storeID, courierID *kernel.UUID,
) (RegisterUserCommand, error) {
	parsedRole, roleErr := user.ParseRole(strings.TrimSpace(role))

	var nameErr, emailErr, passwordErr error
	if strings.TrimSpace(name) == "" {
		nameErr = user.ErrNameIsRequired
	}
	if user.NormalizeEmail(email) == "" {
		emailErr = user.ErrEmailIsRequired
	}
	if password == "" {
		passwordErr = ErrPasswordIsRequired
	}

	if err := errors.Join(userID.Validate(), nameErr, emailErr, passwordErr, roleErr); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:    userID,
		name:      strings.TrimSpace(name),
		email:     user.NormalizeEmail(email),
		password:  password,
		role:      parsedRole,
		storeID:   storeID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// RegisterUserCommandHandler hashes the password and stores an active user.
// A taken email yields errs.ErrConflict from the repository.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	now        Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	now Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory, hasher: hasher, now: clockOrSystem(now)}
}

func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.userID, cmd.name, cmd.email, hash, cmd.role, cmd.storeID, cmd.courierID, h.now())
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

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string
	guard    guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	var emailErr, passwordErr error
	if user.NormalizeEmail(email) == "" {
		emailErr = user.ErrEmailIsRequired
	}
	if password == "" {
		passwordErr = ErrPasswordIsRequired
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{email: user.NormalizeEmail(email), password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

// LoginCommandHandler checks credentials, stamps the login and issues a token.
// Unknown email, wrong password and inactive accounts all map to errs.ErrUnauthorized.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	now        Clock
}

func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	now Clock,
) LoginCommandHandler {
	return LoginCommandHandler{uowFactory: uowFactory, hasher: hasher, tokens: tokens, now: clockOrSystem(now)}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetByEmail(ctx, cmd.email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err = u.RecordLogin(h.now()); err != nil {
		return LoginResult{}, err
	}
	if err = repo.Update(ctx, u); err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := h.tokens.Issue(u.Principal())
	if err != nil {
		return LoginResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}
