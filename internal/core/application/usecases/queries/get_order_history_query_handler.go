package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status change log from the
// database.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the order's status changes in the order they happened.
// An order with no recorded changes yields an empty slice, not an error;
// callers distinguish "unknown order" through the order repository.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	changes := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			actor,
			occurred_at
		FROM status_changes
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var change GetOrderHistoryQueryResponse

		err = rows.Scan(
			&change.Status,
			&change.Actor,
			&change.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}
