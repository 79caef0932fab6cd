package commands

import (
	"errors"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var ErrRescheduleOrderCommandIsNotConstructed = errors.New(
	"RescheduleOrderCommand must be created via NewRescheduleOrderCommand constructor",
)

// RescheduleOrderCommand represents a participant moving the agreed time of
// an active engagement.
type RescheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	newAt   time.Time

	guard guard.ConstructorGuard
}

// NewRescheduleOrderCommand creates a reschedule command.
func NewRescheduleOrderCommand(orderID, actorID kernel.UUID, newAt time.Time) (RescheduleOrderCommand, error) {
	cmd := RescheduleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return RescheduleOrderCommand{}, err
	}
	if newAt.IsZero() {
		return RescheduleOrderCommand{}, errs.NewValueIsRequiredError("newAt")
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.newAt = newAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RescheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleOrderCommandIsNotConstructed)
}

// OrderID returns the order being rescheduled.
func (c RescheduleOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the requesting participant.
func (c RescheduleOrderCommand) ActorID() kernel.UUID { return c.actorID }

// NewAt returns the new agreed time.
func (c RescheduleOrderCommand) NewAt() time.Time { return c.newAt }
