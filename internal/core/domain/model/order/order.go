package order

import (
	"errors"
	"fmt"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// AcceptanceWindow is the fixed duration after creation during which a
// specialist may accept a pending order before it expires automatically.
const AcceptanceWindow = 120 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a service engagement between a customer and a specialist.
// It is the aggregate root that owns the request lifecycle from creation
// through acceptance to completion, confirmation and rating.
//
// Order follows these invariants:
//   - At most one specialist is ever bound; once the order is ASSIGNED the
//     binding never changes for the rest of its lifetime
//   - Exactly one scheduling intent (urgent, preferred or scheduled time)
//   - Every transition appends exactly one event to the aggregate's log
//   - Address presence matches the service mode (HOME/OFFICE carry one,
//     ONLINE never does)
//   - Terminal statuses end the lifecycle; orders are never destroyed
//
// Transition methods validate the acting principal and the current status,
// returning errs.ErrNotAuthorized or errs.ErrPreconditionFailed so callers
// can distinguish forbidden actors from state conflicts.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	specialistID *kernel.UUID
	mode         ServiceMode
	categoryID   int64
	serviceID    kernel.UUID
	address      *kernel.Address
	intent       SchedulingIntent

	acceptDeadlineAt time.Time
	createdAt        time.Time
	status           Status

	events []Event

	isConstructed bool
}

// NewOrder creates a pending order for a customer. The acceptance deadline is
// fixed at createdAt + AcceptanceWindow. A non-nil preTarget addresses the
// request to one specific specialist, who alone may accept it.
//
// Address rules depend on mode: HOME and OFFICE require a geocoded address,
// ONLINE forbids one. The CREATED event is recorded immediately with the
// customer as the actor.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	mode ServiceMode,
	categoryID int64,
	serviceID kernel.UUID,
	address *kernel.Address,
	intent SchedulingIntent,
	preTarget *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMode(mode),
		o.setCategoryID(categoryID),
		o.setServiceID(serviceID),
		o.setAddress(mode, address),
		o.setIntent(intent),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	if preTarget != nil {
		if err := preTarget.Validate(); err != nil {
			return nil, err
		}
		target := *preTarget
		o.specialistID = &target
	}

	o.createdAt = createdAt
	o.acceptDeadlineAt = createdAt.Add(AcceptanceWindow)

	o.record(customerID, EventCreated, map[string]string{
		"mode":   mode.String(),
		"intent": intent.Kind().String(),
	}, createdAt)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without recording events.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	specialistID *kernel.UUID,
	mode ServiceMode,
	categoryID int64,
	serviceID kernel.UUID,
	address *kernel.Address,
	intent SchedulingIntent,
	acceptDeadlineAt time.Time,
	createdAt time.Time,
	status Status,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveSpecialist(specialistID != nil); err != nil {
		return nil, err
	}

	o := &Order{
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setMode(mode),
		o.setCategoryID(categoryID),
		o.setServiceID(serviceID),
		o.setAddress(mode, address),
		o.setIntent(intent),
	); err != nil {
		return nil, err
	}

	if specialistID != nil {
		if err := specialistID.Validate(); err != nil {
			return nil, err
		}
		bound := *specialistID
		o.specialistID = &bound
	}

	o.acceptDeadlineAt = acceptDeadlineAt
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Customer returns the requesting customer's identifier.
func (o *Order) Customer() kernel.UUID { return o.customerID }

// Specialist returns the bound (or, while PENDING, pre-targeted) specialist's
// identifier. Returns nil when the order is open to any specialist.
func (o *Order) Specialist() *kernel.UUID { return o.specialistID }

// Mode returns where the service takes place.
func (o *Order) Mode() ServiceMode { return o.mode }

// CategoryID returns the requested service category.
func (o *Order) CategoryID() int64 { return o.categoryID }

// ServiceID returns the catalog service entry the order was created for.
func (o *Order) ServiceID() kernel.UUID { return o.serviceID }

// Address returns the order's resolved address, nil for ONLINE orders.
func (o *Order) Address() *kernel.Address { return o.address }

// Intent returns the order's scheduling intent.
func (o *Order) Intent() SchedulingIntent { return o.intent }

// AcceptDeadlineAt returns when the acceptance window closes.
func (o *Order) AcceptDeadlineAt() time.Time { return o.acceptDeadlineAt }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// IsParticipant reports whether the actor is the order's customer or its
// bound/pre-targeted specialist.
func (o *Order) IsParticipant(actor kernel.UUID) bool {
	if o.customerID.IsEqual(actor) {
		return true
	}
	return o.specialistID != nil && o.specialistID.IsEqual(actor)
}

// Events returns the uncommitted events recorded by transitions since the
// aggregate was constructed or restored. Repositories persist them together
// with the status write in the same transaction.
func (o *Order) Events() []Event { return o.events }

// Accept binds the specialist to a pending order and transitions it to
// ASSIGNED. The binding is an exclusive acquisition: it only succeeds while
// the order is still PENDING and its acceptance deadline has not passed, and
// on a pre-targeted order only the targeted specialist may act.
func (o *Order) Accept(specialistID kernel.UUID, now time.Time) error {
	if err := specialistID.Validate(); err != nil {
		return err
	}

	if o.specialistID != nil && !o.specialistID.IsEqual(specialistID) {
		return errs.NewNotAuthorizedError("accept this order", specialistID.String())
	}

	if o.status == Pending && now.After(o.acceptDeadlineAt) {
		return errs.NewPreconditionFailedError("acceptance deadline has not passed")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	bound := specialistID
	o.specialistID = &bound
	o.record(specialistID, EventAccepted, nil, now)
	return nil
}

// ExtendAcceptDeadline pushes the acceptance deadline of a pending order to
// a later time. Only the customer may extend.
func (o *Order) ExtendAcceptDeadline(actor kernel.UUID, until time.Time, now time.Time) error {
	if !o.customerID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("extend the acceptance deadline", actor.String())
	}
	if o.status != Pending {
		return errs.NewPreconditionFailedErrorWithCause("status is PENDING",
			fmt.Errorf("current status is %s", o.status))
	}
	if !until.After(o.acceptDeadlineAt) {
		return errs.NewValueIsInvalidErrorWithCause("deadline",
			fmt.Errorf("%s is not after the current deadline", until))
	}

	o.acceptDeadlineAt = until
	o.record(actor, EventAcceptDeadlineExtended, map[string]string{
		"until": until.UTC().Format(time.RFC3339),
	}, now)
	return nil
}

// Start moves an assigned order into IN_PROGRESS. Only the bound specialist may start.
func (o *Order) Start(actor kernel.UUID, now time.Time) error {
	if err := o.requireBoundSpecialist(actor, "start this order"); err != nil {
		return err
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventStarted, nil, now)
	return nil
}

// Pause suspends in-progress work. Only the bound specialist may pause.
func (o *Order) Pause(actor kernel.UUID, now time.Time) error {
	if err := o.requireBoundSpecialist(actor, "pause this order"); err != nil {
		return err
	}

	newStatus, err := o.status.Pause()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventPaused, nil, now)
	return nil
}

// Resume continues paused work. Only the bound specialist may resume.
func (o *Order) Resume(actor kernel.UUID, now time.Time) error {
	if err := o.requireBoundSpecialist(actor, "resume this order"); err != nil {
		return err
	}

	newStatus, err := o.status.Resume()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventResumed, nil, now)
	return nil
}

// Reschedule updates the agreed service time. Allowed for either participant
// while the order is ASSIGNED or IN_PROGRESS; the status does not change.
func (o *Order) Reschedule(actor kernel.UUID, newAt time.Time, now time.Time) error {
	if !o.IsParticipant(actor) {
		return errs.NewNotAuthorizedError("reschedule this order", actor.String())
	}
	if o.status != Assigned && o.status != InProgress {
		return errs.NewPreconditionFailedErrorWithCause("status is ASSIGNED or IN_PROGRESS",
			fmt.Errorf("current status is %s", o.status))
	}

	intent, err := NewScheduledIntent(newAt)
	if err != nil {
		return err
	}

	o.intent = intent
	o.record(actor, EventRescheduled, map[string]string{
		"scheduled_at": newAt.UTC().Format(time.RFC3339),
	}, now)
	return nil
}

// Finish reports the work done and hands the order to the customer for
// review. Only the bound specialist may finish.
func (o *Order) Finish(actor kernel.UUID, now time.Time) error {
	if err := o.requireBoundSpecialist(actor, "finish this order"); err != nil {
		return err
	}

	newStatus, err := o.status.Finish()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventFinishedBySpecialist, nil, now)
	return nil
}

// Confirm accepts the reported finish. Only the customer may confirm.
func (o *Order) Confirm(actor kernel.UUID, now time.Time) error {
	if !o.customerID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("confirm this order", actor.String())
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventConfirmedByClient, nil, now)
	return nil
}

// RejectFinish disputes the reported finish and sends the order back to
// IN_PROGRESS. Only the customer may reject; the reason is recorded and
// relayed to the specialist.
func (o *Order) RejectFinish(actor kernel.UUID, reason string, now time.Time) error {
	if !o.customerID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("reject this order's finish", actor.String())
	}

	newStatus, err := o.status.RejectFinish()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventRejectedByClient, map[string]string{"reason": reason}, now)
	return nil
}

// Close ends a confirmed order after its rating was recorded. Only the
// customer may close, and only once: the order must still be
// CONFIRMED_BY_CLIENT, which makes a second rating a conflict.
func (o *Order) Close(actor kernel.UUID, score int, now time.Time) error {
	if !o.customerID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("rate this order", actor.String())
	}

	newStatus, err := o.status.Close()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventRated, map[string]string{"score": fmt.Sprintf("%d", score)}, now)
	return nil
}

// CancelByCustomer cancels the order on the customer's initiative. Disallowed
// once the customer has confirmed the work. Never affects the specialist's
// cancellation statistic.
func (o *Order) CancelByCustomer(actor kernel.UUID, reason string, now time.Time) error {
	if !o.customerID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("cancel this order", actor.String())
	}

	newStatus, err := o.status.CancelByCustomer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventCancelledByCustomer, map[string]string{"reason": reason}, now)
	return nil
}

// CancelBySpecialist cancels the order on the specialist's initiative.
// While the order is still PENDING this is a decline of a targeted request;
// callers decide from the prior status whether the specialist's cancellation
// statistic is affected.
func (o *Order) CancelBySpecialist(actor kernel.UUID, reason string, now time.Time) error {
	if o.specialistID == nil || !o.specialistID.IsEqual(actor) {
		return errs.NewNotAuthorizedError("cancel this order", actor.String())
	}

	newStatus, err := o.status.CancelBySpecialist()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(actor, EventCancelledBySpecialist, map[string]string{"reason": reason}, now)
	return nil
}

// Expire forces a pending order whose acceptance deadline has passed into
// CANCELLED_AUTO. The event is attributed to the system actor. Callers apply
// the same conditional status guard when persisting, so concurrent sweep
// paths converge on exactly one recorded expiry.
func (o *Order) Expire(now time.Time) error {
	if !now.After(o.acceptDeadlineAt) {
		return errs.NewPreconditionFailedError("acceptance deadline has passed")
	}

	newStatus, err := o.status.Expire()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(SystemActor(), EventCancelledAuto, nil, now)
	return nil
}

func (o *Order) requireBoundSpecialist(actor kernel.UUID, action string) error {
	if o.specialistID == nil || !o.specialistID.IsEqual(actor) || o.status == Pending {
		return errs.NewNotAuthorizedError(action, actor.String())
	}
	return nil
}

func (o *Order) record(actor kernel.UUID, eventType EventType, payload map[string]string, at time.Time) {
	event, err := NewEvent(o.id, actor, eventType, payload, at)
	if err != nil {
		// Transition methods validate actors before recording; an invalid
		// event here means the aggregate itself is broken.
		panic(err)
	}
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setMode(mode ServiceMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.mode = mode
	return nil
}

func (o *Order) setCategoryID(categoryID int64) error {
	if categoryID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("categoryID",
			fmt.Errorf("%d is not greater than 0", categoryID))
	}
	o.categoryID = categoryID
	return nil
}

func (o *Order) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("serviceID", err)
	}
	o.serviceID = serviceID
	return nil
}

func (o *Order) setAddress(mode ServiceMode, address *kernel.Address) error {
	if mode.RequiresAddress() {
		if address == nil {
			return errs.NewValueIsRequiredError("address")
		}
		if err := address.Validate(); err != nil {
			return err
		}
		addr := *address
		o.address = &addr
		return nil
	}

	if address != nil {
		return errs.NewValueIsInvalidErrorWithCause("address",
			fmt.Errorf("%s orders must not carry an address", mode))
	}
	return nil
}

func (o *Order) setIntent(intent SchedulingIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	o.intent = intent
	return nil
}
