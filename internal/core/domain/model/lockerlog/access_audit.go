package lockerlog

import (
	"errors"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
)

// AuditAction names what was attempted on a locker.
type AuditAction string

const (
	AuditCollectRequested AuditAction = "collect_requested"
	AuditCollectFailed    AuditAction = "collect_failed"
	AuditCollectLocked    AuditAction = "collect_locked_out"
)

// ActorResident is the only actor type the engine writes.
const ActorResident = "resident"

// AccessAuditRecord is one immutable line of the access ledger. It has no
// setters; once built it is only ever inserted.
type AccessAuditRecord struct {
	ID           kernel.UUID
	DeliveryID   kernel.UUID
	LockerID     kernel.UUID
	Action       AuditAction
	ActorType    string
	ActorDetails string
	OTPEntered   string
	Success      bool
	CreatedAt    time.Time
}

// NewAccessAudit records an attempt by a resident against one delivery.
func NewAccessAudit(
	deliveryID, lockerID kernel.UUID,
	action AuditAction,
	actorDetails, otpEntered string,
	success bool,
	now time.Time,
) (AccessAuditRecord, error) {
	if err := errors.Join(deliveryID.Validate(), lockerID.Validate()); err != nil {
		return AccessAuditRecord{}, err
	}
	return AccessAuditRecord{
		ID:           kernel.NewUUID(),
		DeliveryID:   deliveryID,
		LockerID:     lockerID,
		Action:       action,
		ActorType:    ActorResident,
		ActorDetails: actorDetails,
		OTPEntered:   otpEntered,
		Success:      success,
		CreatedAt:    now,
	}, nil
}
