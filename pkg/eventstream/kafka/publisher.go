// Package kafka publishes task events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/courtsideco/courtside/pkg/eventstream"
)

// Config configures a kafka Publisher.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the destination topic for task events.
	Topic string
}

// Publisher writes task events to Kafka, keyed by context id so all events
// for one conversation land in the same partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a kafka publisher.
func NewPublisher(config Config) (*Publisher, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if config.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Topic:    config.Topic,
		Balancer: &kafka.Hash{},
	}

	return &Publisher{writer: writer}, nil
}

// PublishTask writes one event to the topic.
func (p *Publisher) PublishTask(ctx context.Context, event *eventstream.TaskCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilTaskEvent
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling task event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ContextID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing task event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
