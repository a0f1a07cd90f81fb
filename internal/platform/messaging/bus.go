package messaging

import (
	"context"
	"log/slog"
	"sync"

	"funnel/internal/shared/events"
)

// Bus carries list-staleness notifications from the mutation layer to the
// presentation layer. In-process publish/subscribe: after any successful
// mutation the affected collection is invalidated, never patched in place.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan events.Invalidation
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string][]chan events.Invalidation),
		logger:      logger,
	}
}

func (b *Bus) PublishInvalidation(ctx context.Context, event events.Invalidation) error {
	b.mu.RLock()
	subs := append([]chan events.Invalidation(nil), b.subscribers[event.Entity]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping invalidation for slow subscriber",
					"event", "invalidation_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"entity", event.Entity,
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("invalidation published",
			"event", "invalidation_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"entity", event.Entity,
		)
	}
	return nil
}

// Subscribe delivers invalidations for one entity collection until ctx ends.
func (b *Bus) Subscribe(ctx context.Context, entity string, handler func(context.Context, events.Invalidation)) {
	ch := make(chan events.Invalidation, 128)

	b.mu.Lock()
	b.subscribers[entity] = append(b.subscribers[entity], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(entity, ch)
				return
			case event := <-ch:
				handler(ctx, event)
			}
		}
	}()
}

func (b *Bus) removeSubscriber(entity string, target chan events.Invalidation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[entity]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan events.Invalidation, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[entity] = filtered
}
