package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrReviewOrderCommandIsNotConstructed = errors.New(
	"ReviewOrderCommand must be created via NewConfirmOrderCommand or NewRejectFinishCommand constructor",
)

// ReviewOrderCommand represents the customer's verdict on work the
// specialist declared finished: either confirm it or send it back with a
// reason.
type ReviewOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	confirm bool
	reason  string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command confirming finished work.
func NewConfirmOrderCommand(orderID, actorID kernel.UUID) (ReviewOrderCommand, error) {
	return newReviewOrderCommand(orderID, actorID, true, "")
}

// NewRejectFinishCommand creates a command sending finished work back to the
// specialist. The reason is free text and may be empty.
func NewRejectFinishCommand(orderID, actorID kernel.UUID, reason string) (ReviewOrderCommand, error) {
	return newReviewOrderCommand(orderID, actorID, false, reason)
}

func newReviewOrderCommand(orderID, actorID kernel.UUID, confirm bool, reason string) (ReviewOrderCommand, error) {
	cmd := ReviewOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ReviewOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.confirm = confirm
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewOrderCommand) Validate() error {
	return c.guard.Validate(ErrReviewOrderCommandIsNotConstructed)
}

// OrderID returns the order under review.
func (c ReviewOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the reviewing customer.
func (c ReviewOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Confirm reports whether the verdict accepts the work.
func (c ReviewOrderCommand) Confirm() bool { return c.confirm }

// Reason returns the rejection reason, empty on confirmation.
func (c ReviewOrderCommand) Reason() string { return c.reason }
