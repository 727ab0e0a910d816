package commands

import (
	"context"
	"errors"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/pkg/guard"
)

var (
	ErrCreateStoreCommandIsNotConstructed = errors.New(
		"CreateStoreCommand must be created via NewCreateStoreCommand constructor",
	)
	ErrUpdateStoreCommandIsNotConstructed = errors.New(
		"UpdateStoreCommand must be created via NewUpdateStoreCommand constructor",
	)
)

type CreateStoreCommand struct { //nolint:recvcheck //using for validation
	storeID     kernel.UUID
	profile     store.Profile
	platformFee kernel.Money
	guard       guard.ConstructorGuard
}

// NewCreateStoreCommand builds the command. A zero fee means the default platform fee.
func NewCreateStoreCommand(storeID kernel.UUID, profile store.Profile, fee kernel.Money) (CreateStoreCommand, error) {
	if err := storeID.Validate(); err != nil {
		return CreateStoreCommand{}, err
	}
	return CreateStoreCommand{
		storeID:     storeID,
		profile:     profile,
		platformFee: fee,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateStoreCommand) Validate() error {
	return c.guard.Validate(ErrCreateStoreCommandIsNotConstructed)
}

type UpdateStoreCommand struct { //nolint:recvcheck //using for validation
	storeID kernel.UUID
	patch   store.Patch
	guard   guard.ConstructorGuard
}

func NewUpdateStoreCommand(storeID kernel.UUID, patch store.Patch) (UpdateStoreCommand, error) {
	if err := storeID.Validate(); err != nil {
		return UpdateStoreCommand{}, err
	}
	return UpdateStoreCommand{storeID: storeID, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateStoreCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStoreCommandIsNotConstructed)
}

type CreateStoreCommandHandler struct {
	uowFactory StoreUoWFactory
}

func NewCreateStoreCommandHandler(uowFactory StoreUoWFactory) CreateStoreCommandHandler {
	return CreateStoreCommandHandler{uowFactory: uowFactory}
}

func (h *CreateStoreCommandHandler) Handle(ctx context.Context, cmd CreateStoreCommand) (*store.Store, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := store.NewStore(cmd.storeID, cmd.profile, cmd.platformFee)
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

	if err = uow.StoreRepository().Add(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateStoreCommandHandler applies a partial update; absent fields are kept.
type UpdateStoreCommandHandler struct {
	uowFactory StoreUoWFactory
}

func NewUpdateStoreCommandHandler(uowFactory StoreUoWFactory) UpdateStoreCommandHandler {
	return UpdateStoreCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateStoreCommandHandler) Handle(ctx context.Context, cmd UpdateStoreCommand) (*store.Store, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StoreRepository()
	s, err := repo.Get(ctx, cmd.storeID)
	if err != nil {
		return nil, err
	}
	if err = s.Apply(cmd.patch); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
