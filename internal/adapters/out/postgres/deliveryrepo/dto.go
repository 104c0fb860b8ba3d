// Package deliveryrepo persists delivery aggregates. Deliveries are never
// deleted.
package deliveryrepo

import (
	"time"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DeliveryDTO struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	LocationID       uuid.UUID `gorm:"type:varchar(36);not null;index:idx_deliveries_resident,priority:2"`
	LockerID         uuid.UUID `gorm:"type:varchar(36);not null;index"`
	ResidentID       uuid.UUID `gorm:"type:varchar(36);not null;index:idx_deliveries_resident,priority:1"`
	TrackingNumber   string    `gorm:"size:100;not null"`
	DeliveryCompany  string    `gorm:"column:delivery_company;size:100;not null"`
	PackageSize      string    `gorm:"size:8;not null"`
	OTP              string    `gorm:"column:otp;size:6;not null"`
	OTPExpiresAt     time.Time `gorm:"column:otp_expires_at;not null"`
	OTPAttempts      int       `gorm:"column:otp_attempts;not null;default:0"`
	NotificationSent bool      `gorm:"not null;default:false"`
	Status           string    `gorm:"size:20;not null;index"`
	DepositedAt      time.Time `gorm:"not null"`
	CollectedAt      *time.Time
	CreatedAt        time.Time `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:               d.ID().Bytes(),
		LocationID:       d.LocationID().Bytes(),
		LockerID:         d.LockerID().Bytes(),
		ResidentID:       d.ResidentID().Bytes(),
		TrackingNumber:   d.TrackingNumber(),
		DeliveryCompany:  d.Company(),
		PackageSize:      d.PackageSize().String(),
		OTP:              d.OTP().Code(),
		OTPExpiresAt:     d.OTP().ExpiresAt(),
		OTPAttempts:      d.OTPAttempts(),
		NotificationSent: d.NotificationSent(),
		Status:           string(d.Status()),
		DepositedAt:      d.DepositedAt(),
		CollectedAt:      d.CollectedAt(),
		CreatedAt:        d.CreatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.LocationID, dto.LockerID, dto.ResidentID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	otp, err := delivery.NewOTP(dto.OTP, dto.OTPExpiresAt)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:         ids[0],
		LocationID: ids[1],
		LockerID:   ids[2],
		ResidentID: ids[3],
		Details: delivery.Details{
			TrackingNumber: dto.TrackingNumber,
			Company:        dto.DeliveryCompany,
			PackageSize:    kernel.PackageSize(dto.PackageSize),
		},
		OTP:              otp,
		OTPAttempts:      dto.OTPAttempts,
		NotificationSent: dto.NotificationSent,
		Status:           delivery.Status(dto.Status),
		DepositedAt:      dto.DepositedAt,
		CollectedAt:      dto.CollectedAt,
		CreatedAt:        dto.CreatedAt,
	})
}
