package locker

import (
	"fmt"

	"parcellocker/internal/pkg/errs"
)

// Status is the physical state of a locker.
//
// State transitions:
//
//	Available ──Occupy──> Occupied ──Release──> Available
//	    │                                           ▲
//	    └──────> Maintenance ──ReturnToService──────┘
//
// Occupied lockers cannot be sent to maintenance; the package has to be
// collected first.
type Status string

const (
	Unknown     Status = ""
	Available   Status = "available"
	Occupied    Status = "occupied"
	Maintenance Status = "maintenance"
)

// Validate rejects Unknown and any value not listed above.
func (s Status) Validate() error {
	switch s {
	case Available, Occupied, Maintenance:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid locker status", string(s)))
	}
}

func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}

// Occupy transitions Available -> Occupied.
func (s Status) Occupy() (Status, error) {
	if s != Available {
		return Unknown, transitionError(s, "occupy")
	}
	return Occupied, nil
}

// Release transitions Occupied -> Available.
func (s Status) Release() (Status, error) {
	if s != Occupied {
		return Unknown, transitionError(s, "release")
	}
	return Available, nil
}

// StartMaintenance transitions Available -> Maintenance. Repeating it is a no-op.
func (s Status) StartMaintenance() (Status, error) {
	if s != Available && s != Maintenance {
		return Unknown, transitionError(s, "start maintenance on")
	}
	return Maintenance, nil
}

// ReturnToService transitions Maintenance -> Available.
func (s Status) ReturnToService() (Status, error) {
	if s != Maintenance {
		return Unknown, transitionError(s, "return to service")
	}
	return Available, nil
}

func transitionError(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("cannot %s a locker in %s status", action, s.String()),
	)
}
