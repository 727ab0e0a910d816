package queries

import (
	"context"
	"errors"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/core/domain/model/tracking"
	"montarota/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetCourierTrackQueryIsNotConstructed = errors.New(
	"GetCourierTrackQuery must be created via NewGetCourierTrackQuery constructor",
)

// GetCourierTrackQuery returns the latest tracking.HistoryLimit pings of a courier.
type GetCourierTrackQuery struct {
	courierID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetCourierTrackQuery(courierID kernel.UUID) (GetCourierTrackQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierTrackQuery{}, err
	}
	return GetCourierTrackQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierTrackQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierTrackQueryIsNotConstructed)
}

type GetCourierTrackQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierTrackQueryHandler(db *gorm.DB) GetCourierTrackQueryHandler {
	return GetCourierTrackQueryHandler{db: db}
}

// Handle returns pings newest first. An unknown courier yields an empty track.
func (h GetCourierTrackQueryHandler) Handle(ctx context.Context, query GetCourierTrackQuery) ([]PingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, courier_id, lat, lng, speed_kmh, accuracy_m, created_at
		FROM gps_pings
		WHERE courier_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.courierID.Bytes(), tracking.HistoryLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pings := make([]PingView, 0)
	for rows.Next() {
		var (
			p         PingView
			id        uuid.UUID
			courierID uuid.UUID
			createdAt time.Time
		)
		if err = rows.Scan(&id, &courierID, &p.Lat, &p.Lng, &p.SpeedKmh, &p.AccuracyM, &createdAt); err != nil {
			return nil, err
		}
		p.ID = id
		p.CourierID = courierID
		p.CreatedAt = createdAt.UTC()
		pings = append(pings, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return pings, nil
}
