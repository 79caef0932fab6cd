package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand represents the bound specialist declaring the work done
// and handing the order to the customer for review.
type FinishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinishOrderCommand creates a finish command.
func NewFinishOrderCommand(orderID, actorID kernel.UUID) (FinishOrderCommand, error) {
	cmd := FinishOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return FinishOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}

// OrderID returns the order being finished.
func (c FinishOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the finishing specialist.
func (c FinishOrderCommand) ActorID() kernel.UUID { return c.actorID }
