package commands

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrRegisterResidentCommandIsNotConstructed = errors.New(
	"RegisterResidentCommand must be created via NewRegisterResidentCommand constructor",
)

// RegisterResidentCommand adds the active resident of a flat.
type RegisterResidentCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	flatNumber string
	fullName   string
	mobile     kernel.Mobile
	email      string

	guard guard.ConstructorGuard
}

func NewRegisterResidentCommand(
	locationID kernel.UUID,
	flatNumber, fullName, mobile, email string,
) (RegisterResidentCommand, error) {
	cmd := RegisterResidentCommand{guard: guard.NewConstructorGuard()}

	m, mobileErr := kernel.NewMobile(mobile)
	email = strings.TrimSpace(email)

	var locationErr error
	if err := locationID.Validate(); err != nil {
		locationErr = errs.NewValueIsRequiredErrorWithCause("location id", err)
	}

	if err := errors.Join(
		locationErr,
		requireText("flat number", flatNumber, &cmd.flatNumber),
		requireText("full name", fullName, &cmd.fullName),
		mobileErr,
		resident.ValidateEmail(email),
	); err != nil {
		return RegisterResidentCommand{}, err
	}

	cmd.locationID = locationID
	cmd.mobile = m
	cmd.email = email
	return cmd, nil
}

func (c RegisterResidentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterResidentCommandIsNotConstructed)
}

func (c RegisterResidentCommand) LocationID() kernel.UUID { return c.locationID }
func (c RegisterResidentCommand) FlatNumber() string      { return c.flatNumber }
func (c RegisterResidentCommand) FullName() string        { return c.fullName }
func (c RegisterResidentCommand) Mobile() kernel.Mobile   { return c.mobile }
func (c RegisterResidentCommand) Email() string           { return c.email }

func requireText(param, value string, dst *string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
