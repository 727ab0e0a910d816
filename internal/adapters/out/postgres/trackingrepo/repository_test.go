package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"montarota/internal/adapters/out/postgres/pgtest"
	"montarota/internal/adapters/out/postgres/trackingrepo"
	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTrackingRepository_AddAppendsPing(t *testing.T) {
	ctx := context.Background()
	db := pgtest.NewSQLite(t)
	repo := trackingrepo.NewGormTrackingRepository(db)

	lat, lng, speed := -23.55, -46.63, 32.5
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ping, err := tracking.NewPing(kernel.NewUUID(), kernel.NewUUID(), &lat, &lng, &speed, nil, at)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, ping))

	var dto trackingrepo.PingDTO
	require.NoError(t, db.First(&dto, "id = ?", ping.ID().Bytes()).Error)

	loaded, err := trackingrepo.ToDomain(dto)
	require.NoError(t, err)
	assert.Equal(t, ping.CourierID(), loaded.CourierID())
	assert.InDelta(t, lat, loaded.Point().Lat(), 1e-9)
	assert.InDelta(t, lng, loaded.Point().Lng(), 1e-9)
	require.NotNil(t, loaded.SpeedKmh())
	assert.InDelta(t, speed, *loaded.SpeedKmh(), 1e-9)
	assert.Nil(t, loaded.AccuracyM())
	assert.True(t, at.Equal(loaded.CreatedAt()))
}
