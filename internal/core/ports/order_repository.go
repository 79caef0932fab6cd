// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and outbound providers.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by conditional updates when the
// stored aggregate no longer has the status the caller observed. The
// canonical case is two specialists racing to accept the same order.
var ErrConcurrentModification = errors.New("aggregate was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Updates persist the aggregate snapshot together with any lifecycle events
// recorded since it was loaded; the event log is append-only.
type OrderRepository interface {
	// Add persists a new order aggregate with its recorded events.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and appends
	// its newly recorded events.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithStatusGuard persists the aggregate only if the stored row
	// still has the expected status. Returns ErrConcurrentModification when
	// the guard fails and errs.ObjectNotFoundError when the order does not
	// exist.
	UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetEvents retrieves the full recorded event log of an order, oldest
	// first.
	GetEvents(ctx context.Context, orderID kernel.UUID) ([]order.Event, error)

	// GetExpiredPending retrieves orders still pending whose acceptance
	// deadline is at or before the given instant. Used by the deadline
	// sweeper.
	GetExpiredPending(ctx context.Context, now time.Time) ([]*order.Order, error)

	// ListByParticipant retrieves orders where the given account is the
	// customer or the bound specialist. closed selects terminal orders;
	// otherwise open ones are returned, newest first.
	ListByParticipant(ctx context.Context, participantID kernel.UUID, closed bool, limit, offset int) ([]*order.Order, error)

	// AddRating persists a rating row. Ratings are immutable; a second
	// rating for the same order is a conflict.
	AddRating(ctx context.Context, rating *order.Rating) error
}
