package lockerlog

import (
	"errors"
	"fmt"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrHardwareSyncIsNotConstructed = errors.New("HardwareSyncRecord must be created via its constructors")

// SyncAction is the command a sync row carries to the door controller.
type SyncAction string

const (
	ActionDepositRequested SyncAction = "deposit_requested"
	ActionCollectRequested SyncAction = "collect_requested"
	// ActionCollected is written by the controller after the door closes on
	// an empty locker. The engine only ever purges these rows.
	ActionCollected SyncAction = "collected"
)

func (a SyncAction) Validate() error {
	switch a {
	case ActionDepositRequested, ActionCollectRequested, ActionCollected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("sync action", fmt.Errorf("%q is not a valid sync action", string(a)))
	}
}

// SyncTarget identifies the locker door a command is meant for.
type SyncTarget struct {
	DeliveryID     kernel.UUID
	LockerID       kernel.UUID
	LocationID     kernel.UUID
	LockerNumber   int
	TowerName      string
	ResidentMobile string
}

func (t SyncTarget) validate() error {
	err := errors.Join(t.DeliveryID.Validate(), t.LockerID.Validate(), t.LocationID.Validate())
	if t.LockerNumber <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("locker number", fmt.Errorf("%d is not greater than 0", t.LockerNumber)))
	}
	return err
}

// HardwareSyncRecord is the latest command issued for one delivery. A deposit
// row is active until the resident asks for the door again; the collect
// request then supersedes it in place.
type HardwareSyncRecord struct {
	id                 kernel.UUID
	target             SyncTarget
	action             SyncAction
	otpEntered         string
	depositRequestedAt *time.Time
	collectRequestedAt *time.Time
	isActive           bool
	guard              guard.ConstructorGuard
}

// NewDepositRequest opens the door for the courier. The OTP is copied so the
// controller keypad can verify it offline.
func NewDepositRequest(id kernel.UUID, target SyncTarget, otp string, now time.Time) (*HardwareSyncRecord, error) {
	if err := errors.Join(id.Validate(), target.validate()); err != nil {
		return nil, err
	}
	return &HardwareSyncRecord{
		id:                 id,
		target:             target,
		action:             ActionDepositRequested,
		otpEntered:         otp,
		depositRequestedAt: &now,
		isActive:           true,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// NewCollectRequest is used when no active deposit row exists to supersede.
func NewCollectRequest(id kernel.UUID, target SyncTarget, otp string, now time.Time) (*HardwareSyncRecord, error) {
	if err := errors.Join(id.Validate(), target.validate()); err != nil {
		return nil, err
	}
	return &HardwareSyncRecord{
		id:                 id,
		target:             target,
		action:             ActionCollectRequested,
		otpEntered:         otp,
		collectRequestedAt: &now,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// SyncSnapshot is the persisted form of a HardwareSyncRecord.
type SyncSnapshot struct {
	ID                 kernel.UUID
	Target             SyncTarget
	Action             SyncAction
	OTPEntered         string
	DepositRequestedAt *time.Time
	CollectRequestedAt *time.Time
	IsActive           bool
}

func RestoreHardwareSyncRecord(s SyncSnapshot) (*HardwareSyncRecord, error) {
	if err := errors.Join(s.ID.Validate(), s.Target.validate(), s.Action.Validate()); err != nil {
		return nil, err
	}
	return &HardwareSyncRecord{
		id:                 s.ID,
		target:             s.Target,
		action:             s.Action,
		otpEntered:         s.OTPEntered,
		depositRequestedAt: s.DepositRequestedAt,
		collectRequestedAt: s.CollectRequestedAt,
		isActive:           s.IsActive,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (r *HardwareSyncRecord) Validate() error {
	if r == nil {
		return ErrHardwareSyncIsNotConstructed
	}
	return r.guard.Validate(ErrHardwareSyncIsNotConstructed)
}

func (r *HardwareSyncRecord) ID() kernel.UUID                { return r.id }
func (r *HardwareSyncRecord) Target() SyncTarget             { return r.target }
func (r *HardwareSyncRecord) Action() SyncAction             { return r.action }
func (r *HardwareSyncRecord) OTPEntered() string             { return r.otpEntered }
func (r *HardwareSyncRecord) DepositRequestedAt() *time.Time { return r.depositRequestedAt }
func (r *HardwareSyncRecord) CollectRequestedAt() *time.Time { return r.collectRequestedAt }
func (r *HardwareSyncRecord) IsActive() bool                 { return r.isActive }

// RequestCollect supersedes an active deposit row with a collect command.
func (r *HardwareSyncRecord) RequestCollect(otp string, now time.Time) error {
	if !r.isActive || r.action != ActionDepositRequested {
		return errs.NewValueIsInvalidErrorWithCause(
			"sync action",
			fmt.Errorf("cannot request collect on an %s row (active=%t)", r.action, r.isActive),
		)
	}
	r.action = ActionCollectRequested
	r.otpEntered = otp
	r.collectRequestedAt = &now
	r.isActive = false
	return nil
}
