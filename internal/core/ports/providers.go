package ports

import (
	"context"
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/services"
)

// ErrOutOfServiceRegion is returned by Geocoder when the address resolves
// outside the served region.
var ErrOutOfServiceRegion = errors.New("address is outside the service region")

// SubscriptionProvider reports the billing state of a specialist account.
// The record is returned raw; the visibility gate judges it against the
// evaluation clock.
type SubscriptionProvider interface {
	GetSubscription(ctx context.Context, specialistID kernel.UUID) (services.Subscription, error)
}

// Geocoder resolves a free-form address query to a verified address with
// coordinates. Resolutions outside the served region fail with
// ErrOutOfServiceRegion.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (kernel.Address, error)
}

// Notifier delivers a recorded notification to the recipient's devices.
// Delivery is best effort; callers log failures and move on.
type Notifier interface {
	Send(ctx context.Context, n *notification.Notification) error
}
