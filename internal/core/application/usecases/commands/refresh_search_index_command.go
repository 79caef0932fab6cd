package commands

import (
	"errors"

	"engage/internal/pkg/guard"
)

var ErrRefreshSearchIndexCommandIsNotConstructed = errors.New(
	"RefreshSearchIndexCommand must be created via NewRefreshSearchIndexCommand constructor",
)

// RefreshSearchIndexCommand requests a rebuild of the denormalized search
// index from current specialist facts.
type RefreshSearchIndexCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshSearchIndexCommand creates an index refresh command.
func NewRefreshSearchIndexCommand() RefreshSearchIndexCommand {
	return RefreshSearchIndexCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RefreshSearchIndexCommand) Validate() error {
	return c.guard.Validate(ErrRefreshSearchIndexCommandIsNotConstructed)
}
