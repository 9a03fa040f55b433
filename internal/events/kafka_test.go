package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaPublishKeysByRecord(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "changes", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "shipment:7", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got Event
		require.NoError(t, json.Unmarshal(value, &got))
		assert.Equal(t, Event{Resource: "shipment", Action: Updated, ID: 7, At: at}, got)
		return nil
	})

	k := NewKafka(producer, "changes", zap.NewNop())
	err := k.Publish(context.Background(), Event{Resource: "shipment", Action: Updated, ID: 7, At: at})
	require.NoError(t, err)
	require.NoError(t, k.Close())
}

func TestKafkaPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	k := NewKafka(producer, "changes", zap.NewNop())
	err := k.Publish(context.Background(), Event{Resource: "order", Action: Created, ID: 1})
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, k.Close())
}

func TestKafkaPublishCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, ProducerConfig())
	k := NewKafka(producer, "changes", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, k.Publish(ctx, Event{Resource: "item", Action: Deleted, ID: 1}), context.Canceled)
	require.NoError(t, k.Close())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
