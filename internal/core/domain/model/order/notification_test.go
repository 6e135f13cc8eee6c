package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageForStatus(t *testing.T) {
	t.Run("every_status_has_a_template", func(t *testing.T) {
		for _, status := range allStatuses() {
			message, err := order.MessageForStatus(status)
			require.NoError(t, err, status.String())
			assert.NotEmpty(t, message, status.String())
		}
	})

	t.Run("cancelled_has_its_own_template", func(t *testing.T) {
		message, err := order.MessageForStatus(order.Cancelled)
		require.NoError(t, err)
		assert.Equal(t, "Your order was cancelled.", message)
	})

	t.Run("unknown_status_fails", func(t *testing.T) {
		_, err := order.MessageForStatus(order.Unknown)
		require.Error(t, err)
	})
}

func TestNewNotificationIntent(t *testing.T) {
	t.Run("renders_template_deterministically", func(t *testing.T) {
		orderID := kernel.NewUUID()

		a, err := order.NewNotificationIntent(orderID, "+15550100", order.Accepted)
		require.NoError(t, err)
		b, err := order.NewNotificationIntent(orderID, "+15550100", order.Accepted)
		require.NoError(t, err)

		assert.Equal(t, a.Message(), b.Message())
		assert.Equal(t, order.Accepted, a.TargetStatus())
		assert.Equal(t, "+15550100", a.Contact())
		assert.True(t, orderID.IsEqual(a.OrderID()))
	})

	t.Run("rejects_empty_contact", func(t *testing.T) {
		_, err := order.NewNotificationIntent(kernel.NewUUID(), "", order.Accepted)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.NewNotificationIntent(kernel.NewUUID(), "+15550100", order.Unknown)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var intent order.NotificationIntent
		require.ErrorIs(t, intent.Validate(), order.ErrNotificationIntentIsNotConstructed)
	})
}
