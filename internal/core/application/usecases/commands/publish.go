package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// publishBestEffort sends an integration event and logs a failure instead of returning it.
// The state change it announces is already committed.
func publishBestEffort(ctx context.Context, logger *slog.Logger, publisher ports.EventPublisher, eventType string, payload any) {
	if err := publisher.Publish(ctx, eventType, payload); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			"event_type", eventType,
			"error", err,
		)
	}
}
