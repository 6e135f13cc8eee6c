package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverOrdersQueryHandler reads a driver's active orders straight from
// the database. Bypasses the aggregate because the dispatch screen only needs
// a thin projection.
type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverOrdersQueryHandler creates a handler for driver order queries.
func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

// Handle returns the driver's orders that are not yet delivered or cancelled,
// oldest first.
func (h GetDriverOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDriverOrdersQuery,
) ([]GetDriverOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetDriverOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			street,
			latitude,
			longitude
		FROM orders
		WHERE driver_id = ? AND status NOT IN (?, ?)
		ORDER BY created_at
	`, query.DriverID().String(), order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetDriverOrdersQueryResponse
		var id uuid.UUID
		var latitude, longitude float64

		err = rows.Scan(
			&id,
			&orderResp.Status,
			&orderResp.Street,
			&latitude,
			&longitude,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		destination, pointErr := kernel.NewGeoPoint(latitude, longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		orderResp.Destination = destination

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
