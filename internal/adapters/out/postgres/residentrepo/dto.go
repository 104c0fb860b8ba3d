// Package residentrepo persists resident aggregates.
package residentrepo

import (
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"

	"github.com/google/uuid"
)

// ResidentDTO is a person living in a flat. Several inactive rows may exist
// for one flat; at most one is active.
type ResidentDTO struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	LocationID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_residents_flat,priority:1"`
	FlatNumber string    `gorm:"size:32;not null;index:idx_residents_flat,priority:2"`
	FullName   string    `gorm:"size:255;not null"`
	Mobile     string    `gorm:"size:10;not null;index"`
	Email      string    `gorm:"size:255"`
	Status     string    `gorm:"size:16;not null"`
}

func (ResidentDTO) TableName() string {
	return "residents"
}

func fromDomain(r *resident.Resident) ResidentDTO {
	return ResidentDTO{
		ID:         r.ID().Bytes(),
		LocationID: r.LocationID().Bytes(),
		FlatNumber: r.FlatNumber(),
		FullName:   r.FullName(),
		Mobile:     r.Mobile().String(),
		Email:      r.Email(),
		Status:     string(r.Status()),
	}
}

func toDomain(dto ResidentDTO) (*resident.Resident, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	mobile, err := kernel.NewMobile(dto.Mobile)
	if err != nil {
		return nil, err
	}
	return resident.RestoreResident(
		id, locationID, dto.FlatNumber, dto.FullName, mobile, dto.Email, resident.Status(dto.Status),
	)
}
