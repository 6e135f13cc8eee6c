package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel for every rejected status transition:
// an edge missing from the table, a role that does not own the edge, a
// same-status no-op, a skipped stage, or any attempt to leave a terminal
// state. Callers classify with errors.Is and must treat the order as
// unchanged.
var ErrIllegalTransition = errors.New("illegal transition")

// Status represents the lifecycle state of a food order.
// It implements a forward-only state machine; the only jump permitted is from
// any non-terminal status to the terminal Cancelled.
//
// State transitions and the role owning each edge:
//
//	Placed ──Restaurant──> Accepted ──Restaurant──> Preparing ──Restaurant──> ReadyForPickup
//	ReadyForPickup ──Driver──> PickedUp ──Driver──> OnTheWay ──Driver──> Delivered
//	<any non-terminal> ──Restaurant|System──> Cancelled
//
// Delivered and Cancelled are terminal: no edge leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status: the checkout flow hands orders to the
	// core already in this state.
	Placed

	// Accepted means the restaurant confirmed it will prepare the order.
	Accepted

	// Preparing means the kitchen is working on the order.
	Preparing

	// ReadyForPickup means the order is packed and a driver assignment is
	// triggered as a backend side effect.
	ReadyForPickup

	// PickedUp means the assigned driver collected the order.
	PickedUp

	// OnTheWay means the driver is en route to the delivery address.
	OnTheWay

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is the terminal state reachable from any non-terminal status.
	Cancelled
)

// getStatusStrings returns the wire vocabulary for all Status values,
// including Unknown. These exact strings are the compatibility contract with
// the surrounding platform.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Placed:         "PLACED",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		PickedUp:       "PICKED_UP",
		OnTheWay:       "ON_THE_WAY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns only the valid Status values, for validation
// and reverse lookup.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "PLACED",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		PickedUp:       "PICKED_UP",
		OnTheWay:       "ON_THE_WAY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for anything outside the closed vocabulary.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status", s))
}

// Validate checks if the Status value is one of the eight lifecycle values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// edge is a (from, to) pair in the transition table.
type edge struct {
	from Status
	to   Status
}

// getTransitionOwners returns the legal forward edges, each owned by exactly
// one actor role. Cancellation is handled separately because its source is
// any non-terminal status.
func getTransitionOwners() map[edge]ActorRole {
	return map[edge]ActorRole{
		{from: Placed, to: Accepted}:          RoleRestaurant,
		{from: Accepted, to: Preparing}:       RoleRestaurant,
		{from: Preparing, to: ReadyForPickup}: RoleRestaurant,
		{from: ReadyForPickup, to: PickedUp}:  RoleDriver,
		{from: PickedUp, to: OnTheWay}:        RoleDriver,
		{from: OnTheWay, to: Delivered}:       RoleDriver,
	}
}

// TransitionTo decides whether the requested transition is legal for the
// given actor role and returns the resulting status. This is a pure function
// of (status, target, role); it performs no side effects.
//
// Returns:
//   - (target, nil) when the edge exists and role owns it
//   - (0, error wrapping ErrIllegalTransition) otherwise
//
// Example:
//
//	next, err := current.TransitionTo(order.Accepted, order.RoleRestaurant)
//	if errors.Is(err, order.ErrIllegalTransition) {
//	    // surface to the requesting UI, order unchanged
//	}
func (s Status) TransitionTo(target Status, role ActorRole) (Status, error) {
	if err := errors.Join(s.Validate(), target.Validate(), role.Validate()); err != nil {
		return 0, err
	}

	if target == Cancelled {
		if s.IsTerminal() {
			return 0, newIllegalTransitionError(s, target, role)
		}
		if role != RoleRestaurant && role != RoleSystem {
			return 0, newIllegalTransitionError(s, target, role)
		}
		return Cancelled, nil
	}

	owner, ok := getTransitionOwners()[edge{from: s, to: target}]
	if !ok || owner != role {
		return 0, newIllegalTransitionError(s, target, role)
	}

	return target, nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment. Restaurant-side statuses must not carry a driver;
// driver-side statuses must.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && (s == Placed || s == Accepted || s == Preparing) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s must not have a driver assigned", s.String()),
		)
	}

	if !hasDriver && (s == PickedUp || s == OnTheWay || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s requires a driver assignment", s.String()),
		)
	}

	return nil
}

func newIllegalTransitionError(from, to Status, role ActorRole) error {
	return fmt.Errorf("%w: %s -> %s is not permitted for %s", ErrIllegalTransition, from, to, role)
}
