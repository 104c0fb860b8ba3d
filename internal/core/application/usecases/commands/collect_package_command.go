package commands

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrCollectPackageCommandIsNotConstructed = errors.New(
	"CollectPackageCommand must be created via NewCollectPackageCommand constructor",
)

// CollectPackageCommand is a resident asking for their locker to be opened.
// Every field is required; the shapes of mobile and OTP are checked here so
// malformed input never reaches the store.
type CollectPackageCommand struct { //nolint:recvcheck //using for validation
	locationID   kernel.UUID
	mobile       kernel.Mobile
	flatNumber   string
	residentName string
	otp          string

	guard guard.ConstructorGuard
}

func NewCollectPackageCommand(
	locationID kernel.UUID,
	mobile, flatNumber, residentName, otp string,
) (CollectPackageCommand, error) {
	cmd := CollectPackageCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setMobile(mobile),
		cmd.setFlatNumber(flatNumber),
		cmd.setResidentName(residentName),
		cmd.setOTP(otp),
	); err != nil {
		return CollectPackageCommand{}, err
	}

	return cmd, nil
}

func (c CollectPackageCommand) Validate() error {
	return c.guard.Validate(ErrCollectPackageCommandIsNotConstructed)
}

func (c CollectPackageCommand) LocationID() kernel.UUID { return c.locationID }
func (c CollectPackageCommand) Mobile() kernel.Mobile   { return c.mobile }
func (c CollectPackageCommand) FlatNumber() string      { return c.flatNumber }
func (c CollectPackageCommand) ResidentName() string    { return c.residentName }
func (c CollectPackageCommand) OTP() string             { return c.otp }

func (c *CollectPackageCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	c.locationID = id
	return nil
}

func (c *CollectPackageCommand) setMobile(mobile string) error {
	m, err := kernel.NewMobile(mobile)
	if err != nil {
		return err
	}
	c.mobile = m
	return nil
}

func (c *CollectPackageCommand) setFlatNumber(flat string) error {
	flat = strings.TrimSpace(flat)
	if flat == "" {
		return errs.NewValueIsRequiredError("flat number")
	}
	c.flatNumber = flat
	return nil
}

func (c *CollectPackageCommand) setResidentName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("resident name")
	}
	c.residentName = name
	return nil
}

func (c *CollectPackageCommand) setOTP(otp string) error {
	otp = strings.TrimSpace(otp)
	if err := delivery.ValidateOTPCode(otp); err != nil {
		return err
	}
	c.otp = otp
	return nil
}
