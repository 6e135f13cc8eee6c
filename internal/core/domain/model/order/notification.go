package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrNotificationIntentIsNotConstructed is returned when a NotificationIntent
// was not created via NewNotificationIntent.
var ErrNotificationIntentIsNotConstructed = errors.New(
	"NotificationIntent must be created via NewNotificationIntent constructor")

// getStatusMessages returns the fixed customer-facing message template for
// each status. One template per status; the rendered text confirms the
// corresponding milestone to the customer.
func getStatusMessages() map[Status]string {
	return map[Status]string{
		Placed:         "We received your order and sent it to the restaurant.",
		Accepted:       "The restaurant accepted your order.",
		Preparing:      "The kitchen is preparing your food.",
		ReadyForPickup: "Your order is packed and waiting for a driver.",
		PickedUp:       "Your driver picked up your order.",
		OnTheWay:       "Your order is on the way to you.",
		Delivered:      "Your order was delivered. Enjoy your meal!",
		Cancelled:      "Your order was cancelled.",
	}
}

// MessageForStatus returns the notification template for a status.
// Every valid status has a template.
func MessageForStatus(s Status) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	message, ok := getStatusMessages()[s]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("no message template for %s", s))
	}

	return message, nil
}

// NotificationIntent is the value produced by a successful transition:
// (order id, target contact, target status, rendered message). It has no
// state of its own and is consumed exactly once by the notification
// dispatcher. Creating the intent is deterministic; whether the dispatch
// succeeds is the dispatcher's problem, never the state machine's.
type NotificationIntent struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	contact      string
	targetStatus Status
	message      string

	guard guard.ConstructorGuard
}

// NewNotificationIntent builds the intent for a reached status, rendering the
// fixed template for that status.
func NewNotificationIntent(orderID kernel.UUID, contact string, targetStatus Status) (NotificationIntent, error) {
	intent := NotificationIntent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		intent.setOrderID(orderID),
		intent.setContact(contact),
		intent.setTargetStatus(targetStatus),
	); err != nil {
		return NotificationIntent{}, err
	}

	return intent, nil
}

// Validate ensures the intent was created through the constructor.
func (i NotificationIntent) Validate() error {
	return i.guard.Validate(ErrNotificationIntentIsNotConstructed)
}

// OrderID returns the order the notification is about.
func (i NotificationIntent) OrderID() kernel.UUID {
	return i.orderID
}

// Contact returns the customer contact the message is addressed to.
func (i NotificationIntent) Contact() string {
	return i.contact
}

// TargetStatus returns the status the order transitioned into.
func (i NotificationIntent) TargetStatus() Status {
	return i.targetStatus
}

// Message returns the rendered customer-facing message.
func (i NotificationIntent) Message() string {
	return i.message
}

func (i *NotificationIntent) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	i.orderID = orderID
	return nil
}

func (i *NotificationIntent) setContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("contact")
	}

	i.contact = contact
	return nil
}

func (i *NotificationIntent) setTargetStatus(targetStatus Status) error {
	message, err := MessageForStatus(targetStatus)
	if err != nil {
		return err
	}

	i.targetStatus = targetStatus
	i.message = message
	return nil
}
