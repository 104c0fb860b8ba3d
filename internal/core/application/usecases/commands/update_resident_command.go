package commands

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrUpdateResidentCommandIsNotConstructed = errors.New(
	"UpdateResidentCommand must be created via NewUpdateResidentCommand constructor",
)

// UpdateResidentCommand replaces a resident's details. An empty status keeps
// the stored one.
type UpdateResidentCommand struct { //nolint:recvcheck //using for validation
	residentID kernel.UUID
	flatNumber string
	fullName   string
	mobile     kernel.Mobile
	email      string
	status     resident.Status

	guard guard.ConstructorGuard
}

func NewUpdateResidentCommand(
	residentID kernel.UUID,
	flatNumber, fullName, mobile, email, status string,
) (UpdateResidentCommand, error) {
	cmd := UpdateResidentCommand{guard: guard.NewConstructorGuard()}

	m, mobileErr := kernel.NewMobile(mobile)
	email = strings.TrimSpace(email)

	var idErr error
	if err := residentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("resident id", err)
	}

	var statusErr error
	st := resident.Status(strings.ToLower(strings.TrimSpace(status)))
	if st != "" {
		statusErr = st.Validate()
	}

	if err := errors.Join(
		idErr,
		requireText("flat number", flatNumber, &cmd.flatNumber),
		requireText("full name", fullName, &cmd.fullName),
		mobileErr,
		resident.ValidateEmail(email),
		statusErr,
	); err != nil {
		return UpdateResidentCommand{}, err
	}

	cmd.residentID = residentID
	cmd.mobile = m
	cmd.email = email
	cmd.status = st
	return cmd, nil
}

func (c UpdateResidentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateResidentCommandIsNotConstructed)
}

func (c UpdateResidentCommand) ResidentID() kernel.UUID { return c.residentID }
func (c UpdateResidentCommand) FlatNumber() string      { return c.flatNumber }
func (c UpdateResidentCommand) FullName() string        { return c.fullName }
func (c UpdateResidentCommand) Mobile() kernel.Mobile   { return c.mobile }
func (c UpdateResidentCommand) Email() string           { return c.email }

// Status returns the requested status, or "" to keep the current one.
func (c UpdateResidentCommand) Status() resident.Status { return c.status }
