package commands

import (
	"errors"

	"lms/internal/pkg/guard"
)

var (
	ErrSweepOverdueInvoicesCommandIsNotConstructed = errors.New(
		"SweepOverdueInvoicesCommand must be created via NewSweepOverdueInvoicesCommand constructor",
	)
)

// SweepOverdueInvoicesCommand triggers a sweep that flags every unpaid
// past-due invoice as OVERDUE. Runs periodically from the job scheduler.
type SweepOverdueInvoicesCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOverdueInvoicesCommand creates a command to run the overdue sweep.
// This is a parameterless command that processes all affected invoices.
func NewSweepOverdueInvoicesCommand() SweepOverdueInvoicesCommand {
	return SweepOverdueInvoicesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSweepOverdueInvoicesCommandIsNotConstructed if validation fails.
func (c *SweepOverdueInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrSweepOverdueInvoicesCommandIsNotConstructed)
}
