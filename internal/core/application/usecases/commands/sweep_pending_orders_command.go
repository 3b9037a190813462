package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepPendingOrdersCommandIsNotConstructed = errors.New(
	"SweepPendingOrdersCommand must be created via NewSweepPendingOrdersCommand constructor",
)

// SweepPendingOrdersCommand attempts assignment for every unassigned order awaiting a partner.
// This is a parameterless command.
type SweepPendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepPendingOrdersCommand creates the command. It cannot fail.
func NewSweepPendingOrdersCommand() SweepPendingOrdersCommand {
	return SweepPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c SweepPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepPendingOrdersCommandIsNotConstructed)
}
