package commands

import (
	"errors"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

const (
	// DefaultCompany is recorded when the courier does not name one.
	DefaultCompany = "Other"
	// NoTrackingNumber is recorded when the package has no tracking number.
	NoTrackingNumber = "N/A"
)

var ErrDepositPackageCommandIsNotConstructed = errors.New(
	"DepositPackageCommand must be created via NewDepositPackageCommand constructor",
)

// DepositPackageCommand is a courier placing a package for a flat.
//
// Example:
//
//	cmd, err := NewDepositPackageCommand(locationID, "A-101", "medium", "AWB123", "BlueDart")
//	if err != nil {
//	    return err // validation_error
//	}
//	result, err := handler.Handle(ctx, cmd)
type DepositPackageCommand struct { //nolint:recvcheck //using for validation
	locationID     kernel.UUID
	flatNumber     string
	packageSize    kernel.PackageSize
	trackingNumber string
	company        string

	guard guard.ConstructorGuard
}

func NewDepositPackageCommand(
	locationID kernel.UUID,
	flatNumber, packageSize, trackingNumber, company string,
) (DepositPackageCommand, error) {
	cmd := DepositPackageCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLocationID(locationID),
		cmd.setFlatNumber(flatNumber),
		cmd.setPackageSize(packageSize),
	); err != nil {
		return DepositPackageCommand{}, err
	}

	cmd.trackingNumber = strings.TrimSpace(trackingNumber)
	if cmd.trackingNumber == "" {
		cmd.trackingNumber = NoTrackingNumber
	}
	cmd.company = strings.TrimSpace(company)
	if cmd.company == "" {
		cmd.company = DefaultCompany
	}

	return cmd, nil
}

func (c DepositPackageCommand) Validate() error {
	return c.guard.Validate(ErrDepositPackageCommandIsNotConstructed)
}

func (c DepositPackageCommand) LocationID() kernel.UUID         { return c.locationID }
func (c DepositPackageCommand) FlatNumber() string              { return c.flatNumber }
func (c DepositPackageCommand) PackageSize() kernel.PackageSize { return c.packageSize }
func (c DepositPackageCommand) TrackingNumber() string          { return c.trackingNumber }
func (c DepositPackageCommand) Company() string                 { return c.company }

func (c *DepositPackageCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	c.locationID = id
	return nil
}

func (c *DepositPackageCommand) setFlatNumber(flat string) error {
	flat = strings.TrimSpace(flat)
	if flat == "" {
		return errs.NewValueIsRequiredError("flat number")
	}
	c.flatNumber = flat
	return nil
}

func (c *DepositPackageCommand) setPackageSize(size string) error {
	parsed, err := kernel.ParsePackageSize(size)
	if err != nil {
		return err
	}
	c.packageSize = parsed
	return nil
}
