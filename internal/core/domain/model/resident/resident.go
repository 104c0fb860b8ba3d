package resident

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var (
	ErrFlatNumberIsRequired = errs.NewValueIsRequiredError("flat number")
	ErrFullNameIsRequired   = errs.NewValueIsRequiredError("full name")

	ErrResidentIsNotConstructed = errors.New("Resident must be created via NewResident or RestoreResident")
)

// Status mirrors the location status: inactive residents keep their history
// but are invisible to deposit and collect lookups.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

func (s Status) Validate() error {
	if s != Active && s != Inactive {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid resident status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Resident is a flat owner registered at a location.
//
// Invariants:
//   - flat number and full name are non-empty after trimming
//   - mobile is a valid Indian mobile number (see kernel.NewMobile)
//   - email is empty or a bare address
//   - status is Active or Inactive
//
// At most one Active resident exists per (location, flat). The aggregate
// cannot enforce that alone: handlers check it under ResidentRepository.LockFlat.
//
// Fields:
//   - id: resident identifier
//   - locationID: the tower the flat belongs to; never changes
//   - flatNumber, fullName, mobile, email: contact details used by deposit
//     and collect lookups
//   - status: inactive residents keep their history but are skipped by lookups
type Resident struct {
	id         kernel.UUID
	locationID kernel.UUID
	flatNumber string
	fullName   string
	mobile     kernel.Mobile
	email      string
	status     Status
	guard      guard.ConstructorGuard
}

// NewResident registers an active resident.
//
// Parameters:
//   - id, locationID: constructed identifiers
//   - flatNumber, fullName: trimmed, required
//   - mobile: required
//   - email: optional; when present it must be a bare address such as
//     a.sharma@example.com
func NewResident(
	id, locationID kernel.UUID,
	flatNumber, fullName string,
	mobile kernel.Mobile,
	email string,
) (*Resident, error) {
	return RestoreResident(id, locationID, flatNumber, fullName, mobile, email, Active)
}

func RestoreResident(
	id, locationID kernel.UUID,
	flatNumber, fullName string,
	mobile kernel.Mobile,
	email string,
	status Status,
) (*Resident, error) {
	r := &Resident{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setIDs(id, locationID),
		r.setFlatNumber(flatNumber),
		r.setFullName(fullName),
		r.setMobile(mobile),
		r.setEmail(email),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Resident) Validate() error {
	if r == nil {
		return ErrResidentIsNotConstructed
	}
	return r.guard.Validate(ErrResidentIsNotConstructed)
}

func (r *Resident) ID() kernel.UUID         { return r.id }
func (r *Resident) LocationID() kernel.UUID { return r.locationID }
func (r *Resident) FlatNumber() string      { return r.flatNumber }
func (r *Resident) FullName() string        { return r.fullName }
func (r *Resident) Mobile() kernel.Mobile   { return r.mobile }
func (r *Resident) Email() string           { return r.email }
func (r *Resident) Status() Status          { return r.status }
func (r *Resident) IsActive() bool          { return r.status == Active }

// MatchesName compares the supplied name with the one on record, ignoring
// case and surrounding whitespace.
func (r *Resident) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), r.fullName)
}

// ActorDetails is the audit-log description of this resident, "<name> - <flat>".
func (r *Resident) ActorDetails() string {
	return r.fullName + " - " + r.flatNumber
}

// Deactivate hides the resident from deposit and collect lookups. It is
// idempotent; the caller checks for waiting packages first.
func (r *Resident) Deactivate() {
	r.status = Inactive
}

// Change replaces the resident's details. Either every field is applied or,
// when any of them is invalid, none is.
//
// Parameters:
//   - flatNumber, fullName: trimmed, required
//   - mobile: required
//   - email: optional bare address
//   - status: Active or Inactive
//
// Returns the joined validation errors.
//
// Example:
//
//	if err := r.Change("B-204", r.FullName(), r.Mobile(), r.Email(), r.Status()); err != nil {
//	    return err
//	}
func (r *Resident) Change(flatNumber, fullName string, mobile kernel.Mobile, email string, status Status) error {
	next := *r
	if err := errors.Join(
		next.setFlatNumber(flatNumber),
		next.setFullName(fullName),
		next.setMobile(mobile),
		next.setEmail(email),
		next.setStatus(status),
	); err != nil {
		return err
	}

	*r = next
	return nil
}

func (r *Resident) setIDs(id, locationID kernel.UUID) error {
	if err := errors.Join(id.Validate(), locationID.Validate()); err != nil {
		return err
	}
	r.id = id
	r.locationID = locationID
	return nil
}

func (r *Resident) setFlatNumber(flat string) error {
	flat = strings.TrimSpace(flat)
	if flat == "" {
		return ErrFlatNumberIsRequired
	}
	r.flatNumber = flat
	return nil
}

func (r *Resident) setFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFullNameIsRequired
	}
	r.fullName = name
	return nil
}

func (r *Resident) setMobile(mobile kernel.Mobile) error {
	if mobile.IsZero() {
		return errs.NewValueIsRequiredError("mobile")
	}
	r.mobile = mobile
	return nil
}

func (r *Resident) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	r.email = email
	return nil
}

// ValidateEmail accepts an empty string or a bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid email address", email))
	}
	return nil
}

func (r *Resident) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
