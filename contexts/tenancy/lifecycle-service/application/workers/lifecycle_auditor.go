package workers

import (
	"context"
	"log/slog"

	application "orbit/contexts/tenancy/lifecycle-service/application"
	contractsv1 "orbit/contracts/gen/events/v1"
)

// LifecycleAuditor consumes relayed lifecycle events and writes one audit
// line per event. The worker process subscribes it to the lifecycle topic so
// tenant activity is traceable even before downstream consumers exist.
type LifecycleAuditor struct {
	Logger *slog.Logger
}

// Handle records a single lifecycle event. It never fails: audit logging must
// not push an event back into redelivery.
func (a LifecycleAuditor) Handle(_ context.Context, envelope contractsv1.Envelope) error {
	logger := application.ResolveLogger(a.Logger)
	logger.Info("lifecycle event observed",
		"event", "tenancy_lifecycle_audit",
		"module", "tenancy/lifecycle-service",
		"layer", "worker",
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
		"partition_key", envelope.PartitionKey,
		"occurred_at", envelope.OccurredAt,
	)
	return nil
}
