// Package lockerrepo persists locker aggregates.
package lockerrepo

import (
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"

	"github.com/google/uuid"
)

// LockerDTO is one physical compartment. Locker numbers are unique per
// location.
type LockerDTO struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	LocationID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_lockers_number,priority:1"`
	LockerNumber int       `gorm:"not null;uniqueIndex:idx_lockers_number,priority:2"`
	Size         string    `gorm:"size:8;not null"`
	Status       string    `gorm:"size:16;not null;index"`
	LastOpenedAt *time.Time
	LastClosedAt *time.Time
}

func (LockerDTO) TableName() string {
	return "lockers"
}

func fromDomain(l *locker.Locker) LockerDTO {
	return LockerDTO{
		ID:           l.ID().Bytes(),
		LocationID:   l.LocationID().Bytes(),
		LockerNumber: l.Number(),
		Size:         l.Size().String(),
		Status:       string(l.Status()),
		LastOpenedAt: l.LastOpenedAt(),
		LastClosedAt: l.LastClosedAt(),
	}
}

func toDomain(dto LockerDTO) (*locker.Locker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	return locker.RestoreLocker(
		id, locationID, dto.LockerNumber, kernel.PackageSize(dto.Size), locker.Status(dto.Status),
		dto.LastOpenedAt, dto.LastClosedAt,
	)
}
