package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// StatusChange is one row in an order's status history: which status was
// reached, who drove the transition, and when.
type StatusChange struct {
	OrderID    kernel.UUID
	Status     order.Status
	Actor      order.ActorRole
	OccurredAt time.Time
}

// StatusHistoryRepository is the append-only log of status transitions.
// Appended in the same transaction as the status update itself.
type StatusHistoryRepository interface {
	// Append records a status change.
	Append(ctx context.Context, change StatusChange) error
}
