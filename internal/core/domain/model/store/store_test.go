package store_test

import (
	"testing"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/store"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	s, err := store.NewStore(kernel.NewUUID(), store.Profile{Name: " Pizzaria Boa "}, kernel.ZeroMoney())

	require.NoError(t, err)
	assert.Equal(t, "Pizzaria Boa", s.Profile().Name)
	assert.Equal(t, "4.50", s.PlatformFee().String())
	assert.True(t, s.IsActive())
	assert.NoError(t, s.Validate())

	_, err = store.NewStore(kernel.NewUUID(), store.Profile{}, kernel.ZeroMoney())
	assert.ErrorIs(t, err, store.ErrNameIsRequired)
}

func TestStore_Apply(t *testing.T) {
	s, err := store.NewStore(kernel.NewUUID(), store.Profile{Name: "Pizzaria", Phone: "1111"}, kernel.MustMoney("5"))
	require.NoError(t, err)

	city := "Campinas"
	fee := kernel.MustMoney("3.90")
	inactive := store.Inactive
	require.NoError(t, s.Apply(store.Patch{City: &city, PlatformFee: &fee, Status: &inactive}))

	assert.Equal(t, "Campinas", s.Profile().City)
	assert.Equal(t, "1111", s.Profile().Phone)
	assert.Equal(t, "3.90", s.PlatformFee().String())
	assert.False(t, s.IsActive())

	t.Run("blank name is rejected and nothing changes", func(t *testing.T) {
		blank := ""
		phone := "2222"

		err := s.Apply(store.Patch{Name: &blank, Phone: &phone})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "1111", s.Profile().Phone)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		bad := store.Status("closed")

		assert.ErrorIs(t, s.Apply(store.Patch{Status: &bad}), errs.ErrValueIsInvalid)
	})
}

func TestRestoreStore(t *testing.T) {
	_, err := store.RestoreStore(kernel.NewUUID(), store.Profile{Name: "x"}, kernel.DefaultPlatformFee, "weird")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	s, err := store.RestoreStore(kernel.NewUUID(), store.Profile{Name: "x"}, kernel.DefaultPlatformFee, store.Inactive)
	require.NoError(t, err)
	assert.Equal(t, store.Inactive, s.Status())
}
