package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a specialist's claim on a pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	specialistID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a specialist to accept an order.
func NewAcceptOrderCommand(orderID, specialistID kernel.UUID) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		specialistID.Validate(),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.specialistID = specialistID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// SpecialistID returns the accepting specialist.
func (c AcceptOrderCommand) SpecialistID() kernel.UUID { return c.specialistID }
