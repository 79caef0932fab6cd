package ports

import (
	"context"

	"engage/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for outbound
// notifications.
type NotificationRepository interface {
	// Record persists the notification unless one with the same natural key
	// already exists. Returns true when the row was created and the push
	// should actually be sent.
	Record(ctx context.Context, n *notification.Notification) (bool, error)
}
