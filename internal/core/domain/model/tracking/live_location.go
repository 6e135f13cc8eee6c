package tracking

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrLiveLocationIsNotConstructed is returned when a LiveLocation was not
// created via NewLiveLocation.
var ErrLiveLocationIsNotConstructed = errors.New(
	"LiveLocation must be created via NewLiveLocation constructor")

// LiveLocation is a driver position report: the emitting driver's identity,
// a GeoPoint, and the device-side timestamp of the reading. Immutable value
// object.
//
// Position reports travel over an unreliable transport and may arrive out of
// order; Supersedes is the monotonic-timestamp guard that decides whether a
// report may replace the one currently held for an order.
type LiveLocation struct { //nolint:recvcheck //using for validation
	driverID   kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewLiveLocation creates a validated position report.
func NewLiveLocation(driverID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time) (LiveLocation, error) {
	location := LiveLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		location.setDriverID(driverID),
		location.setPoint(point),
		location.setRecordedAt(recordedAt),
	); err != nil {
		return LiveLocation{}, err
	}

	return location, nil
}

// Validate ensures the location was created through NewLiveLocation.
func (l LiveLocation) Validate() error {
	return l.guard.Validate(ErrLiveLocationIsNotConstructed)
}

// DriverID returns the identity of the driver that emitted the report.
func (l LiveLocation) DriverID() kernel.UUID {
	return l.driverID
}

// Point returns the reported coordinates.
func (l LiveLocation) Point() kernel.GeoPoint {
	return l.point
}

// RecordedAt returns the device-side timestamp of the reading.
func (l LiveLocation) RecordedAt() time.Time {
	return l.recordedAt
}

// Supersedes reports whether this location is strictly newer than other and
// may therefore replace it. Equal timestamps do not supersede: the second of
// two simultaneous identical reports is discarded.
func (l LiveLocation) Supersedes(other LiveLocation) bool {
	return l.recordedAt.After(other.recordedAt)
}

func (l *LiveLocation) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	l.driverID = driverID
	return nil
}

func (l *LiveLocation) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	l.point = point
	return nil
}

func (l *LiveLocation) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recorded at")
	}
	l.recordedAt = recordedAt
	return nil
}
