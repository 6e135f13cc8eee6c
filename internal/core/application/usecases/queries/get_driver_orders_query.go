package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
		"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
	)
)

// GetDriverOrdersQuery retrieves the active orders assigned to one driver.
// Excludes delivered and cancelled orders so the driver sees only the
// deliveries still in flight.
//
// Example:
//
//	query, err := NewGetDriverOrdersQuery(driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid driver orders query: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetDriverOrdersQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverOrdersQuery creates a query for a driver's active orders.
func NewGetDriverOrdersQuery(driverID kernel.UUID) (GetDriverOrdersQuery, error) {
	query := GetDriverOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetDriverOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

// DriverID returns the driver whose orders are requested.
func (q GetDriverOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverOrdersQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetDriverOrdersQueryResponse is one active order on a driver's plate.
type GetDriverOrdersQueryResponse struct {
	ID          kernel.UUID
	Status      string
	Street      string
	Destination kernel.GeoPoint
}
