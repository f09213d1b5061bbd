package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/integrationtestutil"
	"github.com/certifarm/certifarm/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLBroker(t *testing.T) {
	pool := integrationtestutil.InitRawDatabaseContainer(t)

	t.Run("PublishAndSubscribe", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		broker.SetShouldReceiveOwnMessages(true)
		defer broker.Close()

		messagesCh, err := broker.Subscribe(shared.BatchStatusChanged)
		require.NoError(t, err)

		// remarks are free text and may contain quotes
		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.BatchStatusChanged, map[string]any{
			"batchId": "CF-2601-ABC123",
			"status":  "rejected",
			"remarks": "Batch rejected: moisture 'too high'",
		}))
		require.NoError(t, err)

		select {
		case payload := <-messagesCh:
			assert.Equal(t, "CF-2601-ABC123", payload["batchId"])
			assert.Equal(t, "Batch rejected: moisture 'too high'", payload["remarks"])
		case <-time.After(2 * time.Second):
			t.Error("message not received within timeout")
		}
	})

	t.Run("MultipleSubscribers", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		broker.SetShouldReceiveOwnMessages(true)
		defer broker.Close()

		topic := shared.PubSubChannel("multi_topic")
		subscriber1, err := broker.Subscribe(topic)
		require.NoError(t, err)
		subscriber2, err := broker.Subscribe(topic)
		require.NoError(t, err)

		assert.Len(t, broker.GetActiveTopics(), 1)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(topic, map[string]any{"multi": "test"}))
		require.NoError(t, err)

		for i, sub := range []<-chan map[string]any{subscriber1, subscriber2} {
			select {
			case payload := <-sub:
				assert.Equal(t, "test", payload["multi"])
			case <-time.After(2 * time.Second):
				t.Errorf("subscriber %d did not receive message", i+1)
			}
		}
	})

	t.Run("IgnoresOwnMessagesByDefault", func(t *testing.T) {
		broker := database.NewPostgreSQLBroker(pool)
		defer broker.Close()

		topic := shared.PubSubChannel("own_topic")
		messagesCh, err := broker.Subscribe(topic)
		require.NoError(t, err)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(topic, map[string]any{"x": 1}))
		require.NoError(t, err)

		select {
		case <-messagesCh:
			t.Error("received own message")
		case <-time.After(300 * time.Millisecond):
		}
		assert.True(t, broker.IsHealthy(context.Background()))
	})
}
