package nop

import (
	"context"

	"github.com/courtsideco/courtside/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishTask validates input and otherwise does nothing.
func (p *Publisher) PublishTask(_ context.Context, event *eventstream.TaskCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilTaskEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
