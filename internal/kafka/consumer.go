package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events for the notification worker. Members of
// the same group share the topic's partitions.
type Consumer struct {
	topic  string
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		topic: topic,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

// Close is safe on a nil consumer.
func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume hands messages to handler one at a time until ctx ends, a read
// fails or handler returns an error. Offsets are committed on read, so a
// message whose handler failed is not redelivered.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.topic, err)
		}

		if err := handler(ctx, msg); err != nil {
			return fmt.Errorf("handle %s offset %d: %w", c.topic, msg.Offset, err)
		}
	}
}

// BookingEventHandler decodes booking events and passes them to fn.
// Undecodable messages are logged and skipped.
func BookingEventHandler(fn func(context.Context, BookingEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("WARNING: skipping undecodable booking event at offset %d: %v", msg.Offset, err)
			return nil
		}
		return fn(ctx, event)
	}
}
