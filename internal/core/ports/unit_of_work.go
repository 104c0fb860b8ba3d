package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained from it run
// on the transaction opened by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active. After Commit it
	// changes nothing, so handlers defer it unconditionally.
	Rollback(ctx context.Context) error

	LocationRepository() LocationRepository
	ResidentRepository() ResidentRepository
	LockerRepository() LockerRepository
	DeliveryRepository() DeliveryRepository
	HardwareSyncRepository() HardwareSyncRepository
	AccessAuditRepository() AccessAuditRepository
}
