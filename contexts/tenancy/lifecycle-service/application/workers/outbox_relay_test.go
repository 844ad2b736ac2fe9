package workers

import (
	"context"
	"errors"
	"testing"

	"orbit/contexts/tenancy/lifecycle-service/adapters/memory"
	"orbit/contexts/tenancy/lifecycle-service/ports"
	contractsv1 "orbit/contracts/gen/events/v1"
)

type capturingPublisher struct {
	published []contractsv1.Envelope
	failAfter int // fail once this many envelopes were accepted; <0 disables
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, envelope contractsv1.Envelope) error {
	if p.failAfter >= 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, envelope)
	return nil
}

func appendMessage(t *testing.T, store *memory.Store, id string, payload string) {
	t.Helper()
	err := store.AppendOutbox(context.Background(), ports.OutboxMessage{
		OutboxID:  id,
		Topic:     "orbit.tenancy.lifecycle",
		EventType: "tenancy.space.created",
		Payload:   []byte(payload),
		CreatedAt: store.Now(),
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
}

func TestRunOnceDrainsPendingMessages(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{failAfter: -1}
	appendMessage(t, store, "m1", `{"organization_id":"o1","space_id":"s1"}`)
	appendMessage(t, store, "m2", `{"organization_id":"o1","space_id":"s2"}`)

	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published envelopes, got %d", len(publisher.published))
	}
	first := publisher.published[0]
	if first.EventID != "m1" || first.PartitionKey != "o1" || first.SchemaVersion != 1 {
		t.Fatalf("unexpected envelope: %+v", first)
	}
	if remaining := store.PendingOutboxEventTypes(); len(remaining) != 0 {
		t.Fatalf("drained messages must be marked published, pending: %v", remaining)
	}
}

func TestRunOnceKeepsUnpublishedMessagesPending(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{failAfter: 1}
	appendMessage(t, store, "m1", `{"organization_id":"o1"}`)
	appendMessage(t, store, "m2", `{"organization_id":"o2"}`)

	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}

	// The failed message stays pending for the next run; the delivered one
	// does not get republished.
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "m2" {
		t.Fatalf("expected only m2 pending, got %+v", pending)
	}
}

func TestRunOnceHonorsBatchSize(t *testing.T) {
	store := memory.NewStore()
	publisher := &capturingPublisher{failAfter: -1}
	for _, id := range []string{"m1", "m2", "m3"} {
		appendMessage(t, store, id, `{"organization_id":"o1"}`)
	}

	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store, BatchSize: 2}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("batch size ignored, published %d", len(publisher.published))
	}
}
