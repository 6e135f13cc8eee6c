package postgres

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// GormOrderBackend implements ports.OrderBackend on top of the unit of work.
// It is the write path for status transitions: the state machine check, the
// order update, and the history row all happen inside one transaction, so a
// transition that lost a race against a concurrent writer rolls back cleanly.
type GormOrderBackend struct {
	factory ports.UnitOfWorkFactory
}

// NewGormOrderBackend creates an order backend over the unit of work factory.
func NewGormOrderBackend(factory ports.UnitOfWorkFactory) *GormOrderBackend {
	return &GormOrderBackend{factory: factory}
}

// GetOrder retrieves an order by its unique identifier.
func (b *GormOrderBackend) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	uow := b.factory.Create()

	aggregate, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}

	return aggregate, nil
}

// SetOrderStatus applies the transition to the stored order and appends the
// status history row in the same transaction. The state machine runs again on
// the stored order, so a transition that already landed through another path
// is rejected here with order.ErrIllegalTransition.
func (b *GormOrderBackend) SetOrderStatus(
	ctx context.Context,
	id kernel.UUID,
	status order.Status,
	actor order.ActorRole,
) (*order.Order, error) {
	uow := b.factory.Create()

	if err := uow.Begin(ctx); err != nil {
		return nil, ports.NewBackendError("begin transaction", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback(ctx)
			panic(r)
		}
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		_ = uow.Rollback(ctx)
		return nil, classify(err)
	}

	if _, err = aggregate.AttemptTransition(status, actor); err != nil {
		_ = uow.Rollback(ctx)
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		_ = uow.Rollback(ctx)
		return nil, classify(err)
	}

	change := ports.StatusChange{
		OrderID:    id,
		Status:     status,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
	if err = uow.StatusHistoryRepository().Append(ctx, change); err != nil {
		_ = uow.Rollback(ctx)
		return nil, classify(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, ports.NewBackendError("commit transaction", err)
	}

	return aggregate, nil
}

// ListOrdersByDriver retrieves all orders currently assigned to a driver.
func (b *GormOrderBackend) ListOrdersByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	uow := b.factory.Create()

	orders, err := uow.OrderRepository().GetAllByDriver(ctx, driverID)
	if err != nil {
		return nil, classify(err)
	}

	return orders, nil
}

// classify keeps domain errors as-is and wraps infrastructure failures with
// ErrBackendUnavailable so callers can tell a missing order from a store
// outage.
func classify(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, order.ErrIllegalTransition) {
		return err
	}
	return ports.NewBackendError("order store", err)
}
