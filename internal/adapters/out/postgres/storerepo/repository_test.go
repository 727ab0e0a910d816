package storerepo_test

import (
	"context"
	"testing"

	"montarota/internal/adapters/out/postgres/pgtest"
	"montarota/internal/adapters/out/postgres/storerepo"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addStore(t *testing.T, repo *storerepo.GormStoreRepository, name string) *store.Store {
	t.Helper()
	s, err := store.NewStore(kernel.NewUUID(), store.Profile{Name: name, City: "São Paulo"}, kernel.DefaultPlatformFee)
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), s))
	return s
}

func TestGormStoreRepository_ListActiveOrderedByName(t *testing.T) {
	ctx := context.Background()
	repo := storerepo.NewGormStoreRepository(pgtest.NewSQLite(t))

	addStore(t, repo, "Pizzaria Zeca")
	addStore(t, repo, "Açaí do Bairro")
	closed := addStore(t, repo, "Bar Fechado")

	inactive := store.Inactive
	require.NoError(t, closed.Apply(store.Patch{Status: &inactive}))
	require.NoError(t, repo.Update(ctx, closed))

	stores, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Açaí do Bairro", stores[0].Profile().Name)
	assert.Equal(t, "Pizzaria Zeca", stores[1].Profile().Name)
}

func TestGormStoreRepository_UpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	repo := storerepo.NewGormStoreRepository(pgtest.NewSQLite(t))
	s := addStore(t, repo, "Pizzaria Zeca")

	phone := "1133334444"
	fee := kernel.MustMoney("6.00")
	require.NoError(t, s.Apply(store.Patch{Phone: &phone, PlatformFee: &fee}))
	require.NoError(t, repo.Update(ctx, s))

	loaded, err := repo.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "1133334444", loaded.Profile().Phone)
	assert.Equal(t, "São Paulo", loaded.Profile().City)
	assert.Equal(t, "6.00", loaded.PlatformFee().String())
	assert.True(t, loaded.IsActive())
}

func TestGormStoreRepository_GetMissing(t *testing.T) {
	repo := storerepo.NewGormStoreRepository(pgtest.NewSQLite(t))

	_, err := repo.Get(context.Background(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
