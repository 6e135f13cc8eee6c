package ports

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrBackendUnavailable is the sentinel for order-backend read/write
// failures. Surfaced to the caller, who may retry; a retried transition that
// already landed is rejected by the state machine without harm.
var ErrBackendUnavailable = errors.New("order backend unavailable")

// NewBackendError wraps a backend failure with ErrBackendUnavailable for
// errors.Is classification.
func NewBackendError(message string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", ErrBackendUnavailable, message, cause)
	}
	return fmt.Errorf("%w: %s", ErrBackendUnavailable, message)
}

// OrderBackend is the contract with the platform's order store. The core
// reads orders and writes status updates; it never creates or deletes them.
type OrderBackend interface {
	// GetOrder retrieves an order by its unique identifier.
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// SetOrderStatus persists a status change an actor already validated
	// through the state machine, and returns the updated order. The actor
	// role is recorded in the order's status history.
	SetOrderStatus(ctx context.Context, id kernel.UUID, status order.Status, actor order.ActorRole) (*order.Order, error)

	// ListOrdersByDriver retrieves all orders currently assigned to a driver.
	ListOrdersByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)
}
