// Package commands contains the validated command values the presentation
// layer submits to the session orchestrator.
package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

// ErrSubmitTransitionCommandIsNotConstructed is returned when the command was
// not created via NewSubmitTransitionCommand.
var ErrSubmitTransitionCommandIsNotConstructed = errors.New(
	"SubmitTransitionCommand must be created via NewSubmitTransitionCommand constructor",
)

// SubmitTransitionCommand is a request to advance one order's status on
// behalf of an actor role. The session orchestrator delegates the decision to
// the order state machine; the command only guarantees its inputs are
// well-formed.
//
// Example:
//
//	cmd, err := commands.NewSubmitTransitionCommand(orderID, order.Accepted, order.RoleRestaurant)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//	snapshot, err := session.SubmitTransition(ctx, cmd)
type SubmitTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	actorRole    order.ActorRole

	guard guard.ConstructorGuard
}

// NewSubmitTransitionCommand creates a transition request.
// Validates that the order ID, target status, and actor role are well-formed;
// whether the transition is legal is decided later by the state machine.
func NewSubmitTransitionCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	actorRole order.ActorRole,
) (SubmitTransitionCommand, error) {
	command := SubmitTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTargetStatus(targetStatus),
		command.setActorRole(actorRole),
	); err != nil {
		return SubmitTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitTransitionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitTransitionCommandIsNotConstructed)
}

// OrderID returns the order the transition targets.
func (c SubmitTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested status.
func (c SubmitTransitionCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// ActorRole returns the role requesting the transition.
func (c SubmitTransitionCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

func (c *SubmitTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitTransitionCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *SubmitTransitionCommand) setActorRole(actorRole order.ActorRole) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
