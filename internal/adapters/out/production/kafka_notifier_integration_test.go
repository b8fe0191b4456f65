package production_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/adapters/out/production"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/testsupport"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaNotifier_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	brokers, cleanup := testsupport.SetupKafka(ctx, t)
	defer cleanup()

	const topic = "production.preparing"
	notifier, err := production.NewKafkaNotifier(brokers, topic)
	require.NoError(t, err)
	defer func() { _ = notifier.Close() }()

	orderID := kernel.NewUUID()
	// the first write can race topic auto-creation
	require.Eventually(t, func() bool {
		return notifier.NotifyPreparing(ctx, orderID) == nil
	}, 30*time.Second, 500*time.Millisecond)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     "production-test",
		StartOffset: kafka.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	assert.Equal(t, orderID.String(), string(msg.Key))
	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, orderID.String(), payload["orderId"])
}
