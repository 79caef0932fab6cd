package queries

import (
	"errors"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order for a participant: the full snapshot
// plus the recorded event history. Optional viewer coordinates add the
// distance to the engagement address.
type GetOrderQuery struct {
	guard guard.ConstructorGuard

	orderID  kernel.UUID
	viewerID kernel.UUID
	viewerAt *kernel.GeoPoint
}

// NewGetOrderQuery creates a query scoped to the viewing participant.
func NewGetOrderQuery(orderID, viewerID kernel.UUID, viewerAt *kernel.GeoPoint) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	if viewerAt != nil {
		if err := viewerAt.Validate(); err != nil {
			return GetOrderQuery{}, err
		}
	}

	return GetOrderQuery{
		guard:    guard.NewConstructorGuard(),
		orderID:  orderID,
		viewerID: viewerID,
		viewerAt: viewerAt,
	}, nil
}

// OrderID returns the order being requested.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ViewerID returns the requesting participant.
func (q GetOrderQuery) ViewerID() kernel.UUID { return q.viewerID }

// ViewerAt returns the viewer's current position, if shared.
func (q GetOrderQuery) ViewerAt() *kernel.GeoPoint { return q.viewerAt }

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse represents one order snapshot with its history.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	SpecialistID     *kernel.UUID
	Status           string
	Mode             string
	CategoryID       int64
	ServiceID        kernel.UUID
	Address          *string
	IntentKind       string
	IntentAt         *time.Time
	AcceptDeadlineAt time.Time
	CreatedAt        time.Time
	DistanceKm       *float64
	Events           []OrderEventResponse
}

// OrderEventResponse represents one entry of the order's event history.
type OrderEventResponse struct {
	Type      string
	ActorID   kernel.UUID
	Payload   map[string]string
	CreatedAt time.Time
}
