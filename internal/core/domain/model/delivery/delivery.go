package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was built as a
	// struct literal instead of through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrAttemptsExhausted is returned when a failed attempt is registered
	// against a delivery that is already locked out.
	ErrAttemptsExhausted = errors.New("otp attempts exhausted")
)

// Delivery is a package held in a locker for a resident. It is the aggregate
// root of the deposit and collect flows.
//
// Delivery follows these invariants:
//   - All four identifiers are valid
//   - The package size is small, medium or large and the company is set
//   - The OTP is present from the moment of deposit
//   - otpAttempts never exceeds the configured maximum
//   - A collected delivery always carries its collection time
//   - Status moves deposit_requested -> deposited -> collected, never back
type Delivery struct {
	id         kernel.UUID
	locationID kernel.UUID
	// lockerID is the compartment holding the package until collection
	lockerID   kernel.UUID
	residentID kernel.UUID

	trackingNumber string
	company        string
	packageSize    kernel.PackageSize

	// otp is the collection code; otpAttempts counts wrong codes entered
	otp         OTP
	otpAttempts int

	// notificationSent is false when the resident was never told
	notificationSent bool

	status      Status
	depositedAt time.Time
	collectedAt *time.Time
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// Details groups the descriptive fields supplied by the courier.
type Details struct {
	TrackingNumber string
	Company        string
	PackageSize    kernel.PackageSize
}

// NewDelivery records a package placed into lockerID at now. The delivery
// starts deposited with no failed attempts.
//
// Parameters:
//   - id, locationID, lockerID, residentID: valid identifiers
//   - details: courier supplied fields; Company is required
//   - otp: the collection code and its expiry
//   - now: deposit time, also used as the creation time
//
// Returns:
//   - *Delivery: the new delivery
//   - error: every failed field check, joined
//
// Example:
//
//	otp, _ := delivery.NewOTP("482913", now.Add(48*time.Hour))
//	d, err := delivery.NewDelivery(kernel.NewUUID(), loc.ID(), l.ID(), r.ID(),
//	    delivery.Details{TrackingNumber: "AWB77", Company: "BlueDart", PackageSize: kernel.SizeSmall},
//	    otp, now)
//	if err != nil {
//	    return err
//	}
func NewDelivery(
	id, locationID, lockerID, residentID kernel.UUID,
	details Details,
	otp OTP,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard:       guard.NewConstructorGuard(),
		status:      Deposited,
		depositedAt: now,
		createdAt:   now,
	}

	if err := errors.Join(
		d.setIDs(id, locationID, lockerID, residentID),
		d.setDetails(details),
		d.setOTP(otp),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Snapshot is the persisted state of a delivery, used by RestoreDelivery.
type Snapshot struct {
	ID, LocationID, LockerID, ResidentID kernel.UUID
	Details                              Details
	OTP                                  OTP
	OTPAttempts                          int
	NotificationSent                     bool
	Status                               Status
	DepositedAt                          time.Time
	CollectedAt                          *time.Time
	CreatedAt                            time.Time
}

// RestoreDelivery rebuilds a delivery read back from the store.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	d := &Delivery{
		guard:            guard.NewConstructorGuard(),
		notificationSent: s.NotificationSent,
		depositedAt:      s.DepositedAt,
		collectedAt:      s.CollectedAt,
		createdAt:        s.CreatedAt,
	}

	if err := errors.Join(
		d.setIDs(s.ID, s.LocationID, s.LockerID, s.ResidentID),
		d.setDetails(s.Details),
		d.setOTP(s.OTP),
		d.setAttempts(s.OTPAttempts),
		d.setStatus(s.Status, s.CollectedAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate returns ErrDeliveryIsNotConstructed for nil or literal deliveries.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Delivery) ID() kernel.UUID                 { return d.id }
func (d *Delivery) LocationID() kernel.UUID         { return d.locationID }
func (d *Delivery) LockerID() kernel.UUID           { return d.lockerID }
func (d *Delivery) ResidentID() kernel.UUID         { return d.residentID }
func (d *Delivery) TrackingNumber() string          { return d.trackingNumber }
func (d *Delivery) Company() string                 { return d.company }
func (d *Delivery) PackageSize() kernel.PackageSize { return d.packageSize }
func (d *Delivery) OTP() OTP                        { return d.otp }
func (d *Delivery) OTPAttempts() int                { return d.otpAttempts }
func (d *Delivery) NotificationSent() bool          { return d.notificationSent }
func (d *Delivery) Status() Status                  { return d.status }
func (d *Delivery) DepositedAt() time.Time          { return d.depositedAt }
func (d *Delivery) CollectedAt() *time.Time         { return d.collectedAt }
func (d *Delivery) CreatedAt() time.Time            { return d.createdAt }

// IsLockedOut reports whether the delivery has used up maxAttempts wrong codes.
// A locked out delivery rejects every further code, correct or not.
func (d *Delivery) IsLockedOut(maxAttempts int) bool {
	return d.otpAttempts >= maxAttempts
}

// RegisterFailedAttempt increments the attempt counter and returns its new
// value. The counter never passes maxAttempts.
//
// Returns:
//   - int: attempts used so far, including this one
//   - error: ErrAttemptsExhausted once locked out, or a validation error
//     when the delivery is already collected
func (d *Delivery) RegisterFailedAttempt(maxAttempts int) (int, error) {
	if !d.status.IsActive() {
		return d.otpAttempts, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s delivery does not accept otp attempts", d.status.String()),
		)
	}
	if d.IsLockedOut(maxAttempts) {
		return d.otpAttempts, ErrAttemptsExhausted
	}
	d.otpAttempts++
	return d.otpAttempts, nil
}

// ConfirmDeposit promotes a deposit_requested delivery once the controller
// acknowledges the closed door.
func (d *Delivery) ConfirmDeposit() error {
	next, err := d.status.ConfirmDeposit()
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

// Collect ends the delivery at now. The attempt counter is left untouched.
func (d *Delivery) Collect(now time.Time) error {
	next, err := d.status.Collect()
	if err != nil {
		return err
	}
	d.status = next
	d.collectedAt = &now
	return nil
}

// MarkNotified records whether the deposit notification reached the resident.
func (d *Delivery) MarkNotified(sent bool) {
	d.notificationSent = sent
}

func (d *Delivery) setIDs(ids ...kernel.UUID) error {
	var err error
	for _, id := range ids {
		err = errors.Join(err, id.Validate())
	}
	if err != nil {
		return err
	}
	d.id, d.locationID, d.lockerID, d.residentID = ids[0], ids[1], ids[2], ids[3]
	return nil
}

func (d *Delivery) setDetails(details Details) error {
	if err := details.PackageSize.Validate(); err != nil {
		return err
	}
	company := strings.TrimSpace(details.Company)
	if company == "" {
		return errs.NewValueIsRequiredError("delivery company")
	}
	d.trackingNumber = strings.TrimSpace(details.TrackingNumber)
	d.company = company
	d.packageSize = details.PackageSize
	return nil
}

func (d *Delivery) setOTP(otp OTP) error {
	if otp.IsZero() {
		return errs.NewValueIsRequiredError("otp")
	}
	d.otp = otp
	return nil
}

func (d *Delivery) setAttempts(attempts int) error {
	if attempts < 0 {
		return errs.NewValueIsInvalidErrorWithCause("otp attempts", fmt.Errorf("%d is negative", attempts))
	}
	d.otpAttempts = attempts
	return nil
}

func (d *Delivery) setStatus(status Status, collectedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Collected && collectedAt == nil {
		return errs.NewValueIsRequiredErrorWithCause("collected at", errors.New("collected delivery has no collection time"))
	}
	d.status = status
	return nil
}
