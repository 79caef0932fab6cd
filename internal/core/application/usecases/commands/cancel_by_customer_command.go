package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrCancelByCustomerCommandIsNotConstructed = errors.New(
	"CancelByCustomerCommand must be created via NewCancelByCustomerCommand constructor",
)

// CancelByCustomerCommand represents the customer withdrawing an order.
type CancelByCustomerCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelByCustomerCommand creates a customer cancellation command.
// The reason is free text and may be empty.
func NewCancelByCustomerCommand(orderID, actorID kernel.UUID, reason string) (CancelByCustomerCommand, error) {
	cmd := CancelByCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CancelByCustomerCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelByCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCancelByCustomerCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelByCustomerCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the cancelling customer.
func (c CancelByCustomerCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the free-text cancellation reason.
func (c CancelByCustomerCommand) Reason() string { return c.reason }
