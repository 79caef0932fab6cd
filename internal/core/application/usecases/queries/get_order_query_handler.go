package queries

import (
	"context"
	"time"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// DeadlineSweeper expires overdue pending orders. Reads consult it so a
// client polling an expired order never observes a stale PENDING snapshot,
// even between sweeper runs.
type DeadlineSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepExpiredCommand) error
}

// GetOrderQueryHandler retrieves one order with its event history for a
// participant.
type GetOrderQueryHandler struct {
	orders  ports.OrderRepository
	sweeper DeadlineSweeper
	now     func() time.Time
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(orders ports.OrderRepository, sweeper DeadlineSweeper) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:  orders,
		sweeper: sweeper,
		now:     time.Now,
	}
}

// Handle executes the query. Only the customer or the bound specialist may
// read an order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if o.Status() == order.Pending && !h.now().Before(o.AcceptDeadlineAt()) {
		if sweepErr := h.sweeper.Handle(ctx, commands.NewSweepExpiredCommand()); sweepErr != nil {
			return GetOrderQueryResponse{}, sweepErr
		}

		o, err = h.orders.Get(ctx, query.OrderID())
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	if !o.IsParticipant(query.ViewerID()) {
		return GetOrderQueryResponse{}, errs.NewNotAuthorizedError(
			"view order", query.ViewerID().String())
	}

	events, err := h.orders.GetEvents(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return h.buildResponse(o, events, query)
}

func (h GetOrderQueryHandler) buildResponse(
	o *order.Order,
	events []order.Event,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	response := GetOrderQueryResponse{
		ID:               o.ID(),
		CustomerID:       o.Customer(),
		SpecialistID:     o.Specialist(),
		Status:           o.Status().String(),
		Mode:             o.Mode().String(),
		CategoryID:       o.CategoryID(),
		ServiceID:        o.ServiceID(),
		IntentKind:       o.Intent().Kind().String(),
		IntentAt:         o.Intent().At(),
		AcceptDeadlineAt: o.AcceptDeadlineAt(),
		CreatedAt:        o.CreatedAt(),
	}

	if address := o.Address(); address != nil {
		formatted := address.Formatted()
		response.Address = &formatted

		if viewerAt := query.ViewerAt(); viewerAt != nil {
			distance, err := viewerAt.DistanceKm(address.Point())
			if err != nil {
				return GetOrderQueryResponse{}, err
			}
			response.DistanceKm = &distance
		}
	}

	response.Events = make([]OrderEventResponse, 0, len(events))
	for _, event := range events {
		response.Events = append(response.Events, OrderEventResponse{
			Type:      string(event.Type()),
			ActorID:   event.Actor(),
			Payload:   event.Payload(),
			CreatedAt: event.CreatedAt(),
		})
	}

	return response, nil
}
