// Package order contains the Order aggregate and its lifecycle state machine.
//
// Status is a closed enumeration (PLACED through CANCELLED on the wire) with
// a forward-only transition table; each edge is owned by exactly one actor
// role, and any non-terminal status can jump to the terminal CANCELLED for
// Restaurant or System actors. Status.TransitionTo is a pure decision
// function; Order.AttemptTransition applies it and produces exactly one
// NotificationIntent per successful transition.
//
// The core mutates only the status. Totals are derived at construction and
// immutable; orders are created by the out-of-scope checkout flow and arrive
// here already in Placed.
package order
