package ports

import (
	"context"

	"parcellocker/internal/core/domain/model/delivery"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/location"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/core/domain/model/lockerlog"
	"parcellocker/internal/core/domain/model/resident"
)

// Lookups that find nothing return an errs.ObjectNotFoundError. Writes that
// lose a race return an errs.ConflictError.

type LocationRepository interface {
	Add(ctx context.Context, aggregate *location.Location) error
	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)
}

type ResidentRepository interface {
	Add(ctx context.Context, aggregate *resident.Resident) error
	Update(ctx context.Context, aggregate *resident.Resident) error
	Get(ctx context.Context, id kernel.UUID) (*resident.Resident, error)

	// FindActiveByFlat returns the active resident of a flat.
	FindActiveByFlat(ctx context.Context, locationID kernel.UUID, flatNumber string) (*resident.Resident, error)

	// FindActiveByContact returns the active resident matching mobile and flat.
	FindActiveByContact(ctx context.Context, locationID kernel.UUID, mobile kernel.Mobile, flatNumber string) (*resident.Resident, error)

	// LockFlat serializes registrations for one flat until the surrounding
	// transaction ends.
	LockFlat(ctx context.Context, locationID kernel.UUID, flatNumber string) error
}

type LockerRepository interface {
	Add(ctx context.Context, aggregate *locker.Locker) error
	Get(ctx context.Context, id kernel.UUID) (*locker.Locker, error)

	// Update writes the locker only if its stored status is still expected.
	Update(ctx context.Context, aggregate *locker.Locker, expected locker.Status) error

	// FindAllocationCandidates returns at most one locker: the lowest numbered
	// available locker of size at the location that no active delivery
	// references. The row stays locked until the transaction ends; rows
	// locked by a concurrent allocation are skipped.
	FindAllocationCandidates(ctx context.Context, locationID kernel.UUID, size kernel.PackageSize) ([]*locker.Locker, error)
}

type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// Update writes the delivery only if its stored status is still expected.
	Update(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// FindDepositedForUpdate locks and returns the resident's deposited
	// deliveries at the location, oldest first.
	FindDepositedForUpdate(ctx context.Context, residentID, locationID kernel.UUID) ([]*delivery.Delivery, error)

	CountDeposited(ctx context.Context, residentID, locationID kernel.UUID) (int64, error)
}

type HardwareSyncRepository interface {
	Add(ctx context.Context, record *lockerlog.HardwareSyncRecord) error
	Update(ctx context.Context, record *lockerlog.HardwareSyncRecord) error

	// FindActiveByDelivery returns the delivery's row that is still active.
	FindActiveByDelivery(ctx context.Context, deliveryID kernel.UUID) (*lockerlog.HardwareSyncRecord, error)

	// PurgeCollected deletes every row the controller marked collected and
	// returns how many were removed.
	PurgeCollected(ctx context.Context) (int64, error)
}

type AccessAuditRepository interface {
	Append(ctx context.Context, record lockerlog.AccessAuditRecord) error
}
