// Package amqp implements the transition notifier over RabbitMQ. Rendered
// status messages are published to a fanout exchange the notification
// workers consume from; delivery to the customer's device is their problem.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the fanout exchange transition notifications go to.
	ExchangeName = "order_notifications_fanout"

	// QueueName is the durable queue notification workers consume.
	QueueName = "order_notifications.q"
)

// notificationMessage is the wire format of one published notification.
type notificationMessage struct {
	OrderID string    `json:"order_id"`
	Contact string    `json:"contact"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// channel is the slice of amqp.Channel the notifier uses. Narrowed for
// testability.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Notifier publishes transition notifications to RabbitMQ. Implements
// ports.Notifier; every failure wraps ports.ErrDispatchFailed so callers can
// classify without knowing the transport.
type Notifier struct {
	ch channel
}

// NewNotifier creates a notifier over an open AMQP channel.
func NewNotifier(ch channel) (*Notifier, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("amqp channel")
	}
	return &Notifier{ch: ch}, nil
}

// DeclareTopology declares the exchange and queue the notifier publishes
// through. Idempotent; called once at startup.
func DeclareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", QueueName, err)
	}
	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", QueueName, err)
	}
	return nil
}

// Notify publishes the intent's rendered message. Persistent delivery mode;
// the routing key is ignored by the fanout exchange.
func (n *Notifier) Notify(ctx context.Context, intent order.NotificationIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(notificationMessage{
		OrderID: intent.OrderID().String(),
		Contact: intent.Contact(),
		Status:  intent.TargetStatus().String(),
		Message: intent.Message(),
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal notification: %w", ports.ErrDispatchFailed, err)
	}

	err = n.ch.PublishWithContext(
		ctx,
		ExchangeName,
		"",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: publish: %w", ports.ErrDispatchFailed, err)
	}

	return nil
}
