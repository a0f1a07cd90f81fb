package messaging_test

import (
	"context"
	"testing"
	"time"

	"funnel/internal/platform/messaging"
	"funnel/internal/shared/events"
)

func TestBusDeliversToMatchingSubscriber(t *testing.T) {
	bus := messaging.NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Invalidation, 1)
	bus.Subscribe(ctx, events.EntityLeads, func(_ context.Context, event events.Invalidation) {
		received <- event
	})

	err := bus.PublishInvalidation(ctx, events.Invalidation{
		Entity:     events.EntityLeads,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		if event.Entity != events.EntityLeads {
			t.Fatalf("unexpected entity %q", event.Entity)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("invalidation not delivered")
	}
}

func TestBusDoesNotCrossEntityStreams(t *testing.T) {
	bus := messaging.NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Invalidation, 1)
	bus.Subscribe(ctx, events.EntityCampaigns, func(_ context.Context, event events.Invalidation) {
		received <- event
	})

	if err := bus.PublishInvalidation(ctx, events.Invalidation{Entity: events.EntityLeads, OccurredAt: time.Now().UTC()}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("subscriber received foreign entity %q", event.Entity)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBusPublishWithoutSubscribersSucceeds(t *testing.T) {
	bus := messaging.NewBus(nil)

	err := bus.PublishInvalidation(context.Background(), events.Invalidation{
		Entity:     events.EntityCampaigns,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("publish without subscribers failed: %v", err)
	}
}
