// Package locationrepo persists location aggregates.
package locationrepo

import (
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// LocationDTO is one tower of a society.
type LocationDTO struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	SocietyName string    `gorm:"size:255;not null"`
	TowerName   string    `gorm:"size:255;not null"`
	Status      string    `gorm:"size:16;not null;index"`
}

func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(l *location.Location) LocationDTO {
	return LocationDTO{
		ID:          l.ID().Bytes(),
		SocietyName: l.SocietyName(),
		TowerName:   l.TowerName(),
		Status:      string(l.Status()),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return location.RestoreLocation(id, dto.SocietyName, dto.TowerName, location.Status(dto.Status))
}
