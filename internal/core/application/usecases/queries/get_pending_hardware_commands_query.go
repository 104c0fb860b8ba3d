package queries

import (
	"errors"
	"time"

	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/lockerlog"
	"parcellocker/internal/pkg/errs"
	"parcellocker/internal/pkg/guard"
)

var ErrGetPendingHardwareCommandsQueryIsNotConstructed = errors.New(
	"GetPendingHardwareCommandsQuery must be created via NewGetPendingHardwareCommandsQuery constructor",
)

// GetPendingHardwareCommandsQuery is polled by the door controller of a
// location. It returns every command the controller has not yet marked
// collected, oldest first.
type GetPendingHardwareCommandsQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingHardwareCommandsQuery(locationID kernel.UUID) (GetPendingHardwareCommandsQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetPendingHardwareCommandsQuery{}, errs.NewValueIsRequiredErrorWithCause("location id", err)
	}
	return GetPendingHardwareCommandsQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingHardwareCommandsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingHardwareCommandsQueryIsNotConstructed)
}

func (q GetPendingHardwareCommandsQuery) LocationID() kernel.UUID {
	return q.locationID
}

type GetPendingHardwareCommandsQueryResponse struct {
	ID                 kernel.UUID          `json:"id"`
	DeliveryID         kernel.UUID          `json:"delivery_id"`
	LockerNumber       int                  `json:"locker_number"`
	TowerName          string               `json:"tower_name"`
	Action             lockerlog.SyncAction `json:"action"`
	OTP                string               `json:"otp"`
	DepositRequestedAt *time.Time           `json:"deposit_requested_at,omitempty"`
	CollectRequestedAt *time.Time           `json:"collect_requested_at,omitempty"`
	IsActive           bool                 `json:"is_active"`
}
