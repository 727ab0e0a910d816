package tracking_test

import (
	"testing"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/tracking"
	"montarota/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestNewPing(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	courierID := kernel.NewUUID()

	t.Run("valid report", func(t *testing.T) {
		p, err := tracking.NewPing(kernel.NewUUID(), courierID, ptr(-23.5), ptr(-46.6), ptr(32), nil, now)

		require.NoError(t, err)
		assert.InDelta(t, -23.5, p.Point().Lat(), 1e-9)
		assert.InDelta(t, 32, *p.SpeedKmh(), 1e-9)
		assert.Nil(t, p.AccuracyM())
		assert.Equal(t, now, p.CreatedAt())
	})

	t.Run("zero coordinates are a valid position", func(t *testing.T) {
		_, err := tracking.NewPing(kernel.NewUUID(), courierID, ptr(0), ptr(0), nil, nil, now)

		assert.NoError(t, err)
	})

	t.Run("missing coordinate", func(t *testing.T) {
		_, err := tracking.NewPing(kernel.NewUUID(), courierID, ptr(-23.5), nil, nil, nil, now)

		assert.ErrorIs(t, err, tracking.ErrMissingCoordinates)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := tracking.NewPing(kernel.NewUUID(), courierID, ptr(95), ptr(10), nil, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("negative speed and accuracy", func(t *testing.T) {
		_, err := tracking.NewPing(kernel.NewUUID(), courierID, ptr(1), ptr(1), ptr(-1), ptr(-5), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "speed_kmh")
		assert.Contains(t, err.Error(), "accuracy_m")
	})
}
