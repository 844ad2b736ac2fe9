package application

import (
	"context"
	"encoding/json"

	"orbit/contexts/tenancy/lifecycle-service/domain/entities"
	"orbit/contexts/tenancy/lifecycle-service/ports"
)

// TopicLifecycle is the topic carrying tenancy lifecycle events.
const TopicLifecycle = "orbit.tenancy.lifecycle"

const (
	eventOrganizationCreated = "tenancy.organization.created"
	eventOrganizationUpdated = "tenancy.organization.updated"
	eventOrganizationDeleted = "tenancy.organization.deleted"
	eventSpaceCreated        = "tenancy.space.created"
	eventSpaceUpdated        = "tenancy.space.updated"
	eventSpaceDeleted        = "tenancy.space.deleted"
)

type organizationEvent struct {
	OrganizationID  string `json:"organization_id"`
	Name            string `json:"name"`
	Confidentiality string `json:"confidentiality"`
}

type spaceEvent struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	SpaceID          string `json:"space_id"`
	Name             string `json:"name"`
	Confidentiality  string `json:"confidentiality"`
	State            string `json:"state"`
}

func organizationEventPayload(org entities.Organization) any {
	return organizationEvent{
		OrganizationID:  org.ID,
		Name:            org.Name,
		Confidentiality: string(org.Confidentiality),
	}
}

func spaceEventPayload(org entities.Organization, space entities.Space) any {
	return spaceEvent{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		SpaceID:          space.ID,
		Name:             space.Name,
		Confidentiality:  string(space.Confidentiality),
		State:            string(space.State),
	}
}

// emitEvent appends a lifecycle event to the outbox for the worker relay.
// Emission is fire-and-forget: failures are logged and never surfaced.
func (s Service) emitEvent(ctx context.Context, eventType string, entityType string, entityID string, payload any) {
	if !s.PublishEvents || s.Outbox == nil {
		return
	}
	logger := ResolveLogger(s.Logger)

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("lifecycle event encode failed",
			"event", "tenancy_event_encode_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"event_type", eventType,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err.Error(),
		)
		return
	}

	outboxID, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		logger.Warn("lifecycle event id generation failed",
			"event", "tenancy_event_id_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}

	if err := s.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:  outboxID,
		Topic:     TopicLifecycle,
		EventType: eventType,
		Payload:   data,
		CreatedAt: s.now(),
	}); err != nil {
		logger.Warn("lifecycle event append failed",
			"event", "tenancy_event_append_failed",
			"module", "tenancy/lifecycle-service",
			"layer", "application",
			"event_type", eventType,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err.Error(),
		)
	}
}
