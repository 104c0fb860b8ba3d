// Package lockerlogrepo persists the hardware sync log and the access audit
// log.
package lockerlogrepo

import (
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/lockerlog"

	"github.com/google/uuid"
)

// HardwareSyncDTO is one door command. The controller polls these rows and
// marks them collected once the door closes on an empty locker.
type HardwareSyncDTO struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	DeliveryID         uuid.UUID `gorm:"type:varchar(36);not null;index"`
	LockerID           uuid.UUID `gorm:"type:varchar(36);not null"`
	LocationID         uuid.UUID `gorm:"type:varchar(36);not null;index"`
	LockerNumber       int       `gorm:"not null"`
	TowerName          string    `gorm:"size:255;not null"`
	ResidentMobile     string    `gorm:"size:10"`
	Action             string    `gorm:"size:20;not null;index"`
	OTPEntered         string    `gorm:"column:otp_entered;size:6"`
	DepositRequestedAt *time.Time
	CollectRequestedAt *time.Time
	IsActive           bool `gorm:"not null;default:false"`
}

func (HardwareSyncDTO) TableName() string {
	return "hardware_sync"
}

// AccessAuditDTO is an append-only audit line.
type AccessAuditDTO struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	DeliveryID   uuid.UUID `gorm:"type:varchar(36);not null;index"`
	LockerID     uuid.UUID `gorm:"type:varchar(36);not null"`
	Action       string    `gorm:"size:32;not null"`
	ActorType    string    `gorm:"size:16;not null"`
	ActorDetails string    `gorm:"size:255"`
	OTPEntered   string    `gorm:"column:otp_entered;size:6"`
	Success      bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (AccessAuditDTO) TableName() string {
	return "locker_access_log"
}

func syncFromDomain(r *lockerlog.HardwareSyncRecord) HardwareSyncDTO {
	target := r.Target()
	return HardwareSyncDTO{
		ID:                 r.ID().Bytes(),
		DeliveryID:         target.DeliveryID.Bytes(),
		LockerID:           target.LockerID.Bytes(),
		LocationID:         target.LocationID.Bytes(),
		LockerNumber:       target.LockerNumber,
		TowerName:          target.TowerName,
		ResidentMobile:     target.ResidentMobile,
		Action:             string(r.Action()),
		OTPEntered:         r.OTPEntered(),
		DepositRequestedAt: r.DepositRequestedAt(),
		CollectRequestedAt: r.CollectRequestedAt(),
		IsActive:           r.IsActive(),
	}
}

func syncToDomain(dto HardwareSyncDTO) (*lockerlog.HardwareSyncRecord, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.DeliveryID, dto.LockerID, dto.LocationID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return lockerlog.RestoreHardwareSyncRecord(lockerlog.SyncSnapshot{
		ID: ids[0],
		Target: lockerlog.SyncTarget{
			DeliveryID:     ids[1],
			LockerID:       ids[2],
			LocationID:     ids[3],
			LockerNumber:   dto.LockerNumber,
			TowerName:      dto.TowerName,
			ResidentMobile: dto.ResidentMobile,
		},
		Action:             lockerlog.SyncAction(dto.Action),
		OTPEntered:         dto.OTPEntered,
		DepositRequestedAt: dto.DepositRequestedAt,
		CollectRequestedAt: dto.CollectRequestedAt,
		IsActive:           dto.IsActive,
	})
}

func auditFromDomain(r lockerlog.AccessAuditRecord) AccessAuditDTO {
	return AccessAuditDTO{
		ID:           r.ID.Bytes(),
		DeliveryID:   r.DeliveryID.Bytes(),
		LockerID:     r.LockerID.Bytes(),
		Action:       string(r.Action),
		ActorType:    r.ActorType,
		ActorDetails: r.ActorDetails,
		OTPEntered:   r.OTPEntered,
		Success:      r.Success,
		CreatedAt:    r.CreatedAt,
	}
}
