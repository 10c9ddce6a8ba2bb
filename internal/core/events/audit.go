package events

import (
	"context"
	"log/slog"
)

// RegisterAuditHandlers logs every user lifecycle event at info level.
func RegisterAuditHandlers(bus *EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(EventTypeUserCreated, audit)
	bus.Subscribe(EventTypeUserUpdated, audit)
}
