package order

import (
	"fmt"

	"engage/internal/pkg/errs"
)

// Status represents the lifecycle state of a service order.
// It implements a state machine with defined transitions so that orders
// follow the correct engagement workflow.
//
// State transitions:
//
//	PENDING ──> ASSIGNED ──> IN_PROGRESS ⇄ PAUSED
//	   │            │             │
//	   │            └─────┬───────┘
//	   │                  v
//	   │           IN_CLIENT_REVIEW ──> CONFIRMED_BY_CLIENT ──> CLOSED
//	   │                  │ (reject)
//	   │                  └────────────> back to IN_PROGRESS
//	   │
//	   └──> CANCELLED_AUTO (acceptance deadline expired)
//
// Cancellation side branches: the customer may cancel from any state before
// CONFIRMED_BY_CLIENT; the specialist may cancel from PENDING, ASSIGNED or
// IN_PROGRESS.
//
// Terminal states: CLOSED, CANCELLED_BY_CUSTOMER, CANCELLED_BY_SPECIALIST,
// CANCELLED_AUTO. No transition ever leaves a terminal state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order awaits acceptance by a
	// specialist within the acceptance window.
	Pending

	// Assigned indicates a specialist accepted the order and is bound to it.
	// The binding is immutable for the rest of the order's lifetime.
	Assigned

	// InProgress indicates the specialist started (or resumed) the work.
	InProgress

	// Paused indicates work is temporarily suspended by the specialist.
	Paused

	// InClientReview indicates the specialist reported the work finished
	// and awaits the customer's confirmation or dispute.
	InClientReview

	// ConfirmedByClient indicates the customer confirmed the finished work.
	// The only transition left is closing on rating.
	ConfirmedByClient

	// Closed is the terminal success state, entered when the customer rates.
	Closed

	// CancelledByCustomer is the terminal state for customer-initiated cancellation.
	CancelledByCustomer

	// CancelledBySpecialist is the terminal state for specialist-initiated cancellation.
	CancelledBySpecialist

	// CancelledAuto is the terminal state applied by the deadline sweeper
	// when a pending order outlives its acceptance window.
	CancelledAuto
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "UNKNOWN",
		Pending:               "PENDING",
		Assigned:              "ASSIGNED",
		InProgress:            "IN_PROGRESS",
		Paused:                "PAUSED",
		InClientReview:        "IN_CLIENT_REVIEW",
		ConfirmedByClient:     "CONFIRMED_BY_CLIENT",
		Closed:                "CLOSED",
		CancelledByCustomer:   "CANCELLED_BY_CUSTOMER",
		CancelledBySpecialist: "CANCELLED_BY_SPECIALIST",
		CancelledAuto:         "CANCELLED_AUTO",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:               "PENDING",
		Assigned:              "ASSIGNED",
		InProgress:            "IN_PROGRESS",
		Paused:                "PAUSED",
		InClientReview:        "IN_CLIENT_REVIEW",
		ConfirmedByClient:     "CONFIRMED_BY_CLIENT",
		Closed:                "CLOSED",
		CancelledByCustomer:   "CANCELLED_BY_CUSTOMER",
		CancelledBySpecialist: "CANCELLED_BY_SPECIALIST",
		CancelledAuto:         "CANCELLED_AUTO",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other unlisted values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "IN_CLIENT_REVIEW".
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status ends the order's lifecycle.
func (s Status) IsTerminal() bool {
	switch s {
	case Closed, CancelledByCustomer, CancelledBySpecialist, CancelledAuto:
		return true
	default:
		return false
	}
}

// transition returns the target status when the current status is one of
// the allowed sources, or a conflict error naming the violated precondition.
func (s Status) transition(target Status, allowed ...Status) (Status, error) {
	for _, a := range allowed {
		if s == a {
			return target, nil
		}
	}

	return 0, errs.NewPreconditionFailedErrorWithCause(
		fmt.Sprintf("status must allow transition to %s", target),
		fmt.Errorf("current status is %s", s),
	)
}

// Accept transitions PENDING -> ASSIGNED. Binding a specialist is only
// possible while the order is still pending.
func (s Status) Accept() (Status, error) {
	return s.transition(Assigned, Pending)
}

// Start transitions ASSIGNED -> IN_PROGRESS.
func (s Status) Start() (Status, error) {
	return s.transition(InProgress, Assigned)
}

// Pause transitions IN_PROGRESS -> PAUSED.
func (s Status) Pause() (Status, error) {
	return s.transition(Paused, InProgress)
}

// Resume transitions PAUSED -> IN_PROGRESS.
func (s Status) Resume() (Status, error) {
	return s.transition(InProgress, Paused)
}

// Finish transitions ASSIGNED or IN_PROGRESS -> IN_CLIENT_REVIEW.
func (s Status) Finish() (Status, error) {
	return s.transition(InClientReview, Assigned, InProgress)
}

// Confirm transitions IN_CLIENT_REVIEW -> CONFIRMED_BY_CLIENT.
func (s Status) Confirm() (Status, error) {
	return s.transition(ConfirmedByClient, InClientReview)
}

// RejectFinish transitions IN_CLIENT_REVIEW back to IN_PROGRESS when the
// customer disputes the reported finish.
func (s Status) RejectFinish() (Status, error) {
	return s.transition(InProgress, InClientReview)
}

// Close transitions CONFIRMED_BY_CLIENT -> CLOSED. Closing happens together
// with the rating insert and is the terminal success transition.
func (s Status) Close() (Status, error) {
	return s.transition(Closed, ConfirmedByClient)
}

// CancelByCustomer transitions any pre-confirmation state to
// CANCELLED_BY_CUSTOMER. Once the customer has confirmed the work (or the
// order is closed) cancellation is no longer possible.
func (s Status) CancelByCustomer() (Status, error) {
	return s.transition(CancelledByCustomer, Pending, Assigned, InProgress, Paused, InClientReview)
}

// CancelBySpecialist transitions PENDING, ASSIGNED or IN_PROGRESS to
// CANCELLED_BY_SPECIALIST. Cancelling from PENDING is a decline of a
// targeted request; cancelling later abandons accepted work.
func (s Status) CancelBySpecialist() (Status, error) {
	return s.transition(CancelledBySpecialist, Pending, Assigned, InProgress)
}

// Expire transitions PENDING -> CANCELLED_AUTO when the acceptance deadline
// has passed. Applied by the deadline sweeper under the same conditional
// guard as every other transition.
func (s Status) Expire() (Status, error) {
	return s.transition(CancelledAuto, Pending)
}

// ValidateCanHaveSpecialist validates the consistency between order status
// and specialist binding. A bound specialist is required from ASSIGNED
// onward in the happy path; a pending order may carry a pre-targeted
// specialist that is not yet bound.
func (s Status) ValidateCanHaveSpecialist(bound bool) error {
	if bound {
		return nil
	}

	switch s {
	case Assigned, InProgress, Paused, InClientReview, ConfirmedByClient, Closed:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s requires a bound specialist", s),
		)
	default:
		return nil
	}
}
