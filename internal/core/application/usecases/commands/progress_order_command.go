package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var ErrProgressOrderCommandIsNotConstructed = errors.New(
	"ProgressOrderCommand must be created via NewProgressOrderCommand constructor",
)

// ProgressAction selects which work-progress transition the bound
// specialist is reporting.
type ProgressAction int

const (
	ProgressUnknown ProgressAction = iota
	// ProgressStart begins work on an assigned order.
	ProgressStart
	// ProgressPause suspends work in progress.
	ProgressPause
	// ProgressResume continues paused work.
	ProgressResume
)

// ProgressActionFromString parses the wire form of a progress action.
func ProgressActionFromString(s string) (ProgressAction, error) {
	switch s {
	case "START":
		return ProgressStart, nil
	case "PAUSE":
		return ProgressPause, nil
	case "RESUME":
		return ProgressResume, nil
	default:
		return ProgressUnknown, errs.NewValueIsInvalidError("progress action")
	}
}

// ProgressOrderCommand represents the bound specialist reporting work
// progress: starting, pausing or resuming an engagement.
type ProgressOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	action  ProgressAction

	guard guard.ConstructorGuard
}

// NewProgressOrderCommand creates a progress-report command.
func NewProgressOrderCommand(orderID, actorID kernel.UUID, action ProgressAction) (ProgressOrderCommand, error) {
	cmd := ProgressOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ProgressOrderCommand{}, err
	}
	if action != ProgressStart && action != ProgressPause && action != ProgressResume {
		return ProgressOrderCommand{}, errs.NewValueIsInvalidError("progress action")
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.action = action
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProgressOrderCommand) Validate() error {
	return c.guard.Validate(ErrProgressOrderCommandIsNotConstructed)
}

// OrderID returns the order being progressed.
func (c ProgressOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the reporting specialist.
func (c ProgressOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Action returns the requested transition.
func (c ProgressOrderCommand) Action() ProgressAction { return c.action }
