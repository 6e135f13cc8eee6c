package redisfeed

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/feed"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConsumer(t *testing.T, positionFeed *feed.Feed) *Consumer {
	t.Helper()

	// The client is never dialed in these tests; go-redis connects lazily.
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	consumer, err := NewConsumer(client, DefaultChannel, positionFeed, testLogger())
	require.NoError(t, err)
	return consumer
}

func TestHandle_WellFormedEventReachesSubscriber(t *testing.T) {
	positionFeed := feed.New(testLogger())
	consumer := testConsumer(t, positionFeed)

	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	received := make(chan tracking.LiveLocation, 1)
	_, err := positionFeed.Subscribe(orderID, func(location tracking.LiveLocation) {
		received <- location
	})
	require.NoError(t, err)

	recordedAt := time.Now().UTC().Truncate(time.Millisecond)
	payload, err := json.Marshal(map[string]any{
		"order_id":  orderID.String(),
		"driver_id": driverID.String(),
		"latitude":  40.7128,
		"longitude": -74.0060,
		"timestamp": recordedAt,
	})
	require.NoError(t, err)

	consumer.handle(string(payload))

	select {
	case location := <-received:
		assert.True(t, location.DriverID().IsEqual(driverID))
		assert.Equal(t, recordedAt, location.RecordedAt())
		assert.InDelta(t, 40.7128, location.Point().Latitude(), 1e-9)
	default:
		t.Fatal("position event did not reach the subscriber")
	}
}

func TestHandle_MalformedEventsAreSkipped(t *testing.T) {
	positionFeed := feed.New(testLogger())
	consumer := testConsumer(t, positionFeed)

	orderID := kernel.NewUUID()

	received := make(chan tracking.LiveLocation, 1)
	_, err := positionFeed.Subscribe(orderID, func(location tracking.LiveLocation) {
		received <- location
	})
	require.NoError(t, err)

	payloads := map[string]string{
		"not json":       "positions?",
		"bad order id":   `{"order_id":"nope","driver_id":"` + kernel.NewUUID().String() + `","latitude":1,"longitude":1,"timestamp":"2026-08-31T10:00:00Z"}`,
		"bad driver id":  `{"order_id":"` + orderID.String() + `","driver_id":"nope","latitude":1,"longitude":1,"timestamp":"2026-08-31T10:00:00Z"}`,
		"bad latitude":   `{"order_id":"` + orderID.String() + `","driver_id":"` + kernel.NewUUID().String() + `","latitude":91,"longitude":1,"timestamp":"2026-08-31T10:00:00Z"}`,
		"zero timestamp": `{"order_id":"` + orderID.String() + `","driver_id":"` + kernel.NewUUID().String() + `","latitude":1,"longitude":1}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			consumer.handle(payload)
			assert.Empty(t, received)
		})
	}
}

func TestNewConsumer_Validation(t *testing.T) {
	positionFeed := feed.New(testLogger())
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewConsumer(nil, DefaultChannel, positionFeed, testLogger())
	require.Error(t, err)

	_, err = NewConsumer(client, "", positionFeed, testLogger())
	require.Error(t, err)

	_, err = NewConsumer(client, DefaultChannel, nil, testLogger())
	require.Error(t, err)
}
