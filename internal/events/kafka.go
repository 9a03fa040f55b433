package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Kafka publishes events as JSON messages keyed by "<resource>:<id>", so all
// changes to one record land on the same partition.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

// NewKafka wraps an existing producer.
func NewKafka(producer sarama.SyncProducer, topic string, log *zap.Logger) *Kafka {
	return &Kafka{producer: producer, topic: topic, log: log}
}

// DialKafka connects a synchronous producer to brokers.
func DialKafka(brokers []string, topic string, log *zap.Logger) (*Kafka, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("connecting to kafka: %w", err)
	}
	return NewKafka(producer, topic, log), nil
}

// ProducerConfig is the sarama configuration used for event producers.
func ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Retry.Max = 0
	return config
}

// Publish sends e and waits for the broker to acknowledge it.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.Resource + ":" + strconv.FormatInt(e.ID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("sending event to %s: %w", k.topic, err)
	}

	k.log.Debug("event published",
		zap.String("topic", k.topic),
		zap.String("resource", e.Resource),
		zap.String("action", e.Action),
		zap.Int64("id", e.ID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the producer.
func (k *Kafka) Close() error {
	return k.producer.Close()
}
