package commands

import (
	"context"
	"log/slog"

	"engage/internal/core/domain/model/notification"
	"engage/internal/core/ports"
)

// sendBestEffort delivers recorded notifications after the transaction has
// committed. Delivery failures are logged and absorbed; the business
// operation has already succeeded.
func sendBestEffort(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, batch []*notification.Notification) {
	for _, n := range batch {
		if err := notifier.Send(ctx, n); err != nil {
			logger.WarnContext(ctx, "Notification delivery failed",
				"kind", string(n.Kind()),
				"recipient", n.RecipientID().String(),
				"error", err)
		}
	}
}
