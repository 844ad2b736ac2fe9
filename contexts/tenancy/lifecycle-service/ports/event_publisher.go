package ports

import (
	"context"
	"time"

	contractsv1 "orbit/contracts/gen/events/v1"
)

// EventPublisher emits lifecycle events. Publishing is fire-and-forget from
// the orchestrator's point of view: failures are logged by the caller and
// never fatal.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}

// OutboxMessage is a pending relay row.
type OutboxMessage struct {
	OutboxID  string
	Topic     string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxStore persists events for the worker relay to publish.
type OutboxStore interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}
