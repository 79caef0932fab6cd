package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrCancelBySpecialistCommandIsNotConstructed = errors.New(
	"CancelBySpecialistCommand must be created via NewCancelBySpecialistCommand constructor",
)

// CancelBySpecialistCommand represents the specialist backing out of an
// order, either declining a pending request or abandoning accepted work.
type CancelBySpecialistCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelBySpecialistCommand creates a specialist cancellation command.
func NewCancelBySpecialistCommand(orderID, actorID kernel.UUID, reason string) (CancelBySpecialistCommand, error) {
	cmd := CancelBySpecialistCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CancelBySpecialistCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelBySpecialistCommand) Validate() error {
	return c.guard.Validate(ErrCancelBySpecialistCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelBySpecialistCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the cancelling specialist.
func (c CancelBySpecialistCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the free-text cancellation reason.
func (c CancelBySpecialistCommand) Reason() string { return c.reason }
