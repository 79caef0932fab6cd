package commands

import (
	"errors"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var ErrExtendAcceptDeadlineCommandIsNotConstructed = errors.New(
	"ExtendAcceptDeadlineCommand must be created via NewExtendAcceptDeadlineCommand constructor",
)

// ExtendAcceptDeadlineCommand represents the customer granting a pending
// order more time before it expires.
type ExtendAcceptDeadlineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	until   time.Time

	guard guard.ConstructorGuard
}

// NewExtendAcceptDeadlineCommand creates a deadline extension command.
func NewExtendAcceptDeadlineCommand(orderID, actorID kernel.UUID, until time.Time) (ExtendAcceptDeadlineCommand, error) {
	cmd := ExtendAcceptDeadlineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ExtendAcceptDeadlineCommand{}, err
	}
	if until.IsZero() {
		return ExtendAcceptDeadlineCommand{}, errs.NewValueIsRequiredError("until")
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.until = until
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExtendAcceptDeadlineCommand) Validate() error {
	return c.guard.Validate(ErrExtendAcceptDeadlineCommandIsNotConstructed)
}

// OrderID returns the pending order.
func (c ExtendAcceptDeadlineCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the requesting customer.
func (c ExtendAcceptDeadlineCommand) ActorID() kernel.UUID { return c.actorID }

// Until returns the new acceptance deadline.
func (c ExtendAcceptDeadlineCommand) Until() time.Time { return c.until }
