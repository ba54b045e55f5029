package broker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Delivery is one message read from a topic.
type Delivery struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Time      time.Time
}

// messageReader is the subset of *kafka.Reader the consumer relies on.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	reader messageReader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume hands every message to handler until ctx is cancelled. Handler
// errors are logged and the message is committed anyway.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(context.Context, Delivery) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		delivery := toDelivery(m)
		slog.Info("kafka message consumed",
			slog.String("topic", delivery.Topic),
			slog.Int("partition", delivery.Partition),
			slog.Int64("offset", delivery.Offset),
			slog.String("key", string(delivery.Key)),
		)
		if err := handler(ctx, delivery); err != nil {
			slog.Warn("kafka handler error",
				slog.String("topic", delivery.Topic),
				slog.Int("partition", delivery.Partition),
				slog.Int64("offset", delivery.Offset),
				slog.Any("error", err),
			)
		}
	}
}

func toDelivery(m kafka.Message) Delivery {
	headers := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}
	return Delivery{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Headers:   headers,
		Time:      m.Time,
	}
}
