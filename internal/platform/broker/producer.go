package broker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"pizzaUnlimitedApi/internal/platform/events"
)

// KafkaProducer publishes domain events to a single Kafka topic. Failures are
// logged and dropped; event delivery must never fail a customer request.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("kafka event marshal error", slog.Any("error", err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Warn("kafka write error",
			slog.String("topic", event.Topic()),
			slog.String("resourceId", event.ResourceID),
			slog.Any("error", err),
		)
		return
	}
	slog.Debug("kafka event published",
		slog.String("topic", event.Topic()),
		slog.String("resourceId", event.ResourceID),
	)
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
