package http

import (
	"time"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
)

type DepositRequest struct {
	LocationID     string `json:"location_id"`
	FlatNumber     string `json:"flat_number"`
	PackageSize    string `json:"package_size"`
	TrackingNumber string `json:"tracking_number"`
	Company        string `json:"delivery_company"`
}

type CollectRequest struct {
	LocationID   string `json:"location_id"`
	Mobile       string `json:"mobile"`
	FlatNumber   string `json:"flat_number"`
	ResidentName string `json:"resident_name"`
	OTP          string `json:"otp"`
}

type RegisterResidentRequest struct {
	LocationID string `json:"location_id"`
	FlatNumber string `json:"flat_number"`
	FullName   string `json:"full_name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
}

// Envelope wraps every successful response.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

type DepositResponse struct {
	DeliveryID       string             `json:"delivery_id"`
	LockerNumber     int                `json:"locker_number"`
	TowerName        string             `json:"tower_name"`
	SocietyName      string             `json:"society_name"`
	FlatNumber       string             `json:"flat_number"`
	ResidentName     string             `json:"resident_name"`
	PackageSize      kernel.PackageSize `json:"package_size"`
	TrackingNumber   string             `json:"tracking_number"`
	Company          string             `json:"delivery_company"`
	OTP              string             `json:"otp"`
	OTPExpiresAt     time.Time          `json:"otp_expires_at"`
	Status           delivery.Status    `json:"status"`
	NotificationSent bool               `json:"notification_sent"`
}

func newDepositResponse(r commands.DepositResult) DepositResponse {
	return DepositResponse{
		DeliveryID:       r.DeliveryID.String(),
		LockerNumber:     r.LockerNumber,
		TowerName:        r.TowerName,
		SocietyName:      r.SocietyName,
		FlatNumber:       r.FlatNumber,
		ResidentName:     r.ResidentName,
		PackageSize:      r.PackageSize,
		TrackingNumber:   r.TrackingNumber,
		Company:          r.Company,
		OTP:              r.OTP,
		OTPExpiresAt:     r.OTPExpiresAt,
		Status:           r.Status,
		NotificationSent: r.NotificationSent,
	}
}

type CollectResponse struct {
	DeliveryID        string    `json:"delivery_id"`
	LockerNumber      int       `json:"locker_number"`
	TowerName         string    `json:"tower_name"`
	RemainingPackages int64     `json:"remaining_packages"`
	Instruction       string    `json:"instruction"`
	CollectedAt       time.Time `json:"collected_at"`
}

func newCollectResponse(r commands.CollectResult) CollectResponse {
	return CollectResponse{
		DeliveryID:        r.DeliveryID.String(),
		LockerNumber:      r.LockerNumber,
		TowerName:         r.TowerName,
		RemainingPackages: r.RemainingPackages,
		Instruction:       r.Instruction,
		CollectedAt:       r.CollectedAt,
	}
}

type RegisterResidentResponse struct {
	ID string `json:"id"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type UpdateResidentRequest struct {
	FlatNumber string `json:"flat_number"`
	FullName   string `json:"full_name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	Status     string `json:"status"`
}

type ResidentResponse struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	FlatNumber string          `json:"flat_number"`
	FullName   string          `json:"full_name"`
	Mobile     string          `json:"mobile"`
	Email      string          `json:"email"`
	Status     resident.Status `json:"status"`
}

func newResidentResponse(r *resident.Resident) ResidentResponse {
	return ResidentResponse{
		ID:         r.ID().String(),
		LocationID: r.LocationID().String(),
		FlatNumber: r.FlatNumber(),
		FullName:   r.FullName(),
		Mobile:     r.Mobile().String(),
		Email:      r.Email(),
		Status:     r.Status(),
	}
}
