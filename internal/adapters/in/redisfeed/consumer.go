// Package redisfeed consumes driver position events from a Redis pub/sub
// channel and pushes them into the position feed. Driver devices publish
// through the platform's location gateway; this consumer is the single entry
// point of coordinates into the tracking core.
package redisfeed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/feed"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel driver positions arrive on.
const DefaultChannel = "driver_positions"

// positionEvent is the wire format of one driver position report.
type positionEvent struct {
	OrderID   string    `json:"order_id"`
	DriverID  string    `json:"driver_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Consumer subscribes to the position channel and forwards well-formed
// events to the feed. Malformed events are logged and skipped; position
// delivery is lossy by contract, so there is no dead-lettering.
type Consumer struct {
	client  *redis.Client
	channel string
	feed    *feed.Feed
	logger  *slog.Logger
}

// NewConsumer creates a position consumer over the given Redis client.
func NewConsumer(client *redis.Client, channel string, positionFeed *feed.Feed, logger *slog.Logger) (*Consumer, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	if positionFeed == nil {
		return nil, errs.NewValueIsRequiredError("position feed")
	}

	return &Consumer{
		client:  client,
		channel: channel,
		feed:    positionFeed,
		logger:  logger.With("component", "redisfeed", "channel", channel),
	}, nil
}

// Run subscribes and consumes until the context is cancelled. Blocks; run it
// on its own goroutine.
func (c *Consumer) Run(ctx context.Context) error {
	pubsub := c.client.Subscribe(ctx, c.channel)
	defer pubsub.Close()

	// Force the subscription to be established before reporting started.
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	c.logger.Info("position consumer started")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("position consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return errors.New("position subscription closed")
			}
			c.handle(msg.Payload)
		}
	}
}

func (c *Consumer) handle(payload string) {
	var event positionEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Warn("skipping malformed position event", "error", err)
		return
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		c.logger.Warn("skipping position event with bad order id", "order_id", event.OrderID, "error", err)
		return
	}

	driverID, err := kernel.UUIDFromString(event.DriverID)
	if err != nil {
		c.logger.Warn("skipping position event with bad driver id", "driver_id", event.DriverID, "error", err)
		return
	}

	point, err := kernel.NewGeoPoint(event.Latitude, event.Longitude)
	if err != nil {
		c.logger.Warn("skipping position event with bad coordinates",
			"latitude", event.Latitude, "longitude", event.Longitude, "error", err)
		return
	}

	location, err := tracking.NewLiveLocation(driverID, point, event.Timestamp)
	if err != nil {
		c.logger.Warn("skipping invalid position event", "error", err)
		return
	}

	c.feed.Publish(orderID, location)
}
