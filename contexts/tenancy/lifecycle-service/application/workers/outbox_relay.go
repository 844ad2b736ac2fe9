package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "orbit/contexts/tenancy/lifecycle-service/application"
	"orbit/contexts/tenancy/lifecycle-service/ports"
	contractsv1 "orbit/contracts/gen/events/v1"
)

// OutboxRelay drains pending lifecycle events and publishes them through the
// event bus adapter. Run by the worker process on a fixed interval.
type OutboxRelay struct {
	Outbox    ports.OutboxStore
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("lifecycle outbox list failed",
			"event", "tenancy_outbox_list_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		envelope := contractsv1.Envelope{
			EventID:       row.OutboxID,
			EventType:     row.EventType,
			OccurredAt:    row.CreatedAt,
			SourceService: "tenancy/lifecycle-service",
			SchemaVersion: 1,
			PartitionKey:  partitionKey(row.Payload),
			Data:          row.Payload,
		}
		if err := r.Publisher.Publish(ctx, row.Topic, envelope); err != nil {
			logger.Error("lifecycle outbox publish failed",
				"event", "tenancy_outbox_publish_failed",
				"module", "tenancy/lifecycle-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}

// partitionKey keys events by organization so per-organization ordering is
// preserved by partitioned brokers.
func partitionKey(payload []byte) string {
	var keyed struct {
		OrganizationID string `json:"organization_id"`
	}
	if err := json.Unmarshal(payload, &keyed); err != nil {
		return ""
	}
	return keyed.OrganizationID
}
