package delivery

import (
	"fmt"

	"parcellocker/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	DepositRequested ──ConfirmDeposit──> Deposited ──Collect──> Collected
//
// Collected is terminal. DepositRequested and Deposited both count as active:
// the locker they reference is not free for allocation.
type Status string

const (
	Unknown          Status = ""
	DepositRequested Status = "deposit_requested"
	Deposited        Status = "deposited"
	Collected        Status = "collected"
)

// ActiveStatuses lists the statuses that hold a locker.
func ActiveStatuses() []Status {
	return []Status{DepositRequested, Deposited}
}

func (s Status) Validate() error {
	switch s {
	case DepositRequested, Deposited, Collected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
}

func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}

func (s Status) IsActive() bool {
	return s == DepositRequested || s == Deposited
}

// ConfirmDeposit transitions DepositRequested -> Deposited.
func (s Status) ConfirmDeposit() (Status, error) {
	if s != DepositRequested {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm deposit", s.String()),
		)
	}
	return Deposited, nil
}

// Collect transitions Deposited -> Collected.
func (s Status) Collect() (Status, error) {
	if s != Deposited {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to collect", s.String()),
		)
	}
	return Collected, nil
}
