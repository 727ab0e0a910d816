// Package tracking provides Ping, the append-only GPS log entry of a courier.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"
)

// HistoryLimit is the number of pings returned by a track query.
const HistoryLimit = 100

var ErrMissingCoordinates = errs.NewValueIsRequiredError("lat and lng")

// Ping is an immutable position report. It has no setters.
type Ping struct {
	id        kernel.UUID
	courierID kernel.UUID
	point     kernel.GeoPoint
	speedKmh  *float64
	accuracyM *float64
	createdAt time.Time
}

// NewPing validates a report. lat and lng are pointers so an absent coordinate
// is told apart from 0.
func NewPing(id, courierID kernel.UUID, lat, lng, speedKmh, accuracyM *float64, now time.Time) (*Ping, error) {
	if lat == nil || lng == nil {
		return nil, ErrMissingCoordinates
	}

	point, pointErr := kernel.NewGeoPoint(*lat, *lng)
	var speedErr, accuracyErr error
	if speedKmh != nil && *speedKmh < 0 {
		speedErr = errs.NewValueIsInvalidErrorWithCause("speed_kmh", fmt.Errorf("%v is negative", *speedKmh))
	}
	if accuracyM != nil && *accuracyM < 0 {
		accuracyErr = errs.NewValueIsInvalidErrorWithCause("accuracy_m", fmt.Errorf("%v is negative", *accuracyM))
	}
	if err := errors.Join(id.Validate(), courierID.Validate(), pointErr, speedErr, accuracyErr); err != nil {
		return nil, err
	}

	return &Ping{
		id:        id,
		courierID: courierID,
		point:     point,
		speedKmh:  speedKmh,
		accuracyM: accuracyM,
		createdAt: now.UTC(),
	}, nil
}

// RestorePing rebuilds a stored ping.
func RestorePing(id, courierID kernel.UUID, point kernel.GeoPoint, speedKmh, accuracyM *float64, createdAt time.Time) *Ping {
	return &Ping{
		id:        id,
		courierID: courierID,
		point:     point,
		speedKmh:  speedKmh,
		accuracyM: accuracyM,
		createdAt: createdAt,
	}
}

func (p *Ping) ID() kernel.UUID {
	return p.id
}

func (p *Ping) CourierID() kernel.UUID {
	return p.courierID
}

func (p *Ping) Point() kernel.GeoPoint {
	return p.point
}

func (p *Ping) SpeedKmh() *float64 {
	return p.speedKmh
}

func (p *Ping) AccuracyM() *float64 {
	return p.accuracyM
}

func (p *Ping) CreatedAt() time.Time {
	return p.createdAt
}
