package order

import (
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// EventType identifies a kind of order lifecycle event. The values form the
// vocabulary that notification copy and downstream tooling key off of, so
// they are stable wire strings.
type EventType string

const (
	EventCreated                EventType = "CREATED"
	EventAccepted               EventType = "ACCEPTED"
	EventStarted                EventType = "STARTED"
	EventPaused                 EventType = "PAUSED"
	EventResumed                EventType = "RESUMED"
	EventRescheduled            EventType = "RESCHEDULED"
	EventFinishedBySpecialist   EventType = "FINISHED_BY_SPECIALIST"
	EventConfirmedByClient      EventType = "CONFIRMED_BY_CLIENT"
	EventRejectedByClient       EventType = "REJECTED_BY_CLIENT"
	EventRated                  EventType = "RATED"
	EventCancelledByCustomer    EventType = "CANCELLED_BY_CUSTOMER"
	EventCancelledBySpecialist  EventType = "CANCELLED_BY_SPECIALIST"
	EventCancelledAuto          EventType = "CANCELLED_AUTO"
	EventAcceptDeadlineExtended EventType = "ACCEPT_DEADLINE_EXTENDED"
)

// systemActorID is the synthetic principal recorded on sweep-originated
// events, so actorRef never resolves to null.
const systemActorID = "00000000-0000-0000-0000-000000000001"

// SystemActor returns the well-known synthetic principal used for
// transitions the system applies on its own, such as deadline expiry.
func SystemActor() kernel.UUID {
	id, err := kernel.UUIDFromString(systemActorID)
	if err != nil {
		panic(err) // constant is a valid UUID
	}
	return id
}

// Event is one append-only entry in an order's audit log. Every transition
// produces exactly one event; events are never updated or deleted.
type Event struct {
	id        kernel.UUID
	orderID   kernel.UUID
	actorID   kernel.UUID
	eventType EventType
	payload   map[string]string
	createdAt time.Time
}

// NewEvent creates an event for an order transition performed by actorID.
// The payload carries small human-facing details such as a cancellation
// reason; it may be nil.
func NewEvent(
	orderID kernel.UUID,
	actorID kernel.UUID,
	eventType EventType,
	payload map[string]string,
	createdAt time.Time,
) (Event, error) {
	if err := orderID.Validate(); err != nil {
		return Event{}, err
	}
	if err := actorID.Validate(); err != nil {
		return Event{}, err
	}
	if eventType == "" {
		return Event{}, errs.NewValueIsRequiredError("event type")
	}

	return Event{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		actorID:   actorID,
		eventType: eventType,
		payload:   payload,
		createdAt: createdAt,
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	eventType EventType,
	payload map[string]string,
	createdAt time.Time,
) Event {
	return Event{
		id:        id,
		orderID:   orderID,
		actorID:   actorID,
		eventType: eventType,
		payload:   payload,
		createdAt: createdAt,
	}
}

// ID returns the event's unique identifier.
func (e Event) ID() kernel.UUID { return e.id }

// OrderID returns the order this event belongs to.
func (e Event) OrderID() kernel.UUID { return e.orderID }

// Actor returns the principal that caused the event. Sweep-originated
// events carry the system actor.
func (e Event) Actor() kernel.UUID { return e.actorID }

// Type returns the event's vocabulary type.
func (e Event) Type() EventType { return e.eventType }

// Payload returns the event's detail map, possibly nil.
func (e Event) Payload() map[string]string { return e.payload }

// CreatedAt returns when the event was recorded.
func (e Event) CreatedAt() time.Time { return e.createdAt }
