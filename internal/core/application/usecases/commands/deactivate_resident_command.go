package commands

import (
	"errors"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrDeactivateResidentCommandIsNotConstructed = errors.New(
	"DeactivateResidentCommand must be created via NewDeactivateResidentCommand constructor",
)

// DeactivateResidentCommand soft-deletes a resident. The row stays for the
// delivery history.
type DeactivateResidentCommand struct { //nolint:recvcheck //using for validation
	residentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivateResidentCommand(residentID kernel.UUID) (DeactivateResidentCommand, error) {
	if err := residentID.Validate(); err != nil {
		return DeactivateResidentCommand{}, errs.NewValueIsRequiredErrorWithCause("resident id", err)
	}
	return DeactivateResidentCommand{residentID: residentID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeactivateResidentCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateResidentCommandIsNotConstructed)
}

func (c DeactivateResidentCommand) ResidentID() kernel.UUID { return c.residentID }
