package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand represents a specialist flipping their
// availability toggle.
type SetAvailabilityCommand struct { //nolint:recvcheck //using for validation
	specialistID kernel.UUID
	on           bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates an availability toggle command.
func NewSetAvailabilityCommand(specialistID kernel.UUID, on bool) (SetAvailabilityCommand, error) {
	cmd := SetAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := specialistID.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}

	cmd.specialistID = specialistID
	cmd.on = on
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

// SpecialistID returns the specialist flipping the toggle.
func (c SetAvailabilityCommand) SpecialistID() kernel.UUID { return c.specialistID }

// On returns the requested toggle state.
func (c SetAvailabilityCommand) On() bool { return c.on }
