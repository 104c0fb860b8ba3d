// Package commands contains the operations that change locker state: deposit,
// collect, resident management and sync-log housekeeping. Every handler
// validates its command, opens one unit of work, and commits once.
package commands

import (
	"context"

	"parcellocker/internal/core/ports"
)

// Each handler depends only on the repositories it touches, so tests mock
// exactly that surface.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	ResidentRepoFactory interface {
		ResidentRepository() ports.ResidentRepository
	}

	LockerRepoFactory interface {
		LockerRepository() ports.LockerRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	HardwareSyncRepoFactory interface {
		HardwareSyncRepository() ports.HardwareSyncRepository
	}

	AccessAuditRepoFactory interface {
		AccessAuditRepository() ports.AccessAuditRepository
	}

	// DepositUoW spans every record a deposit writes.
	DepositUoW interface {
		TxManager
		LocationRepoFactory
		ResidentRepoFactory
		LockerRepoFactory
		DeliveryRepoFactory
		HardwareSyncRepoFactory
	}

	DepositUoWFactory interface {
		Create() DepositUoW
	}

	// CollectUoW adds the audit ledger to the deposit surface.
	CollectUoW interface {
		DepositUoW
		AccessAuditRepoFactory
	}

	CollectUoWFactory interface {
		Create() CollectUoW
	}

	// ResidentUoW reads deliveries so residents with waiting packages are
	// not moved or deactivated.
	ResidentUoW interface {
		TxManager
		LocationRepoFactory
		ResidentRepoFactory
		DeliveryRepoFactory
	}

	ResidentUoWFactory interface {
		Create() ResidentUoW
	}

	SyncLogUoW interface {
		TxManager
		HardwareSyncRepoFactory
	}

	SyncLogUoWFactory interface {
		Create() SyncLogUoW
	}
)
