// Package postgres provides the GORM implementation of the Unit of Work and
// the store opener. Despite the name it serves every supported dialect
// (postgres, mysql, sqlite); the dialect specific parts live in the dialect
// subpackage.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.DeliveryRepository().Add(ctx, parcel); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork is single use and must not be shared between goroutines.
package postgres

import (
	"context"

	"parcellocker/internal/adapters/out/postgres/deliveryrepo"
	"parcellocker/internal/adapters/out/postgres/dialect"
	"parcellocker/internal/adapters/out/postgres/locationrepo"
	"parcellocker/internal/adapters/out/postgres/lockerlogrepo"
	"parcellocker/internal/adapters/out/postgres/lockerrepo"
	"parcellocker/internal/adapters/out/postgres/residentrepo"
	"parcellocker/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork is one database transaction. Repositories obtained before
// Begin run on the pool; after Begin they run on the transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dialect.ClassifyContext(ctx, "begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
// Serialization and deadlock failures, and a commit attempted after ctx
// expired, come back as errs.ConflictError.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	txCtx := uow.tx.Statement.Context
	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil && txCtx != nil && txCtx.Err() != nil {
		ctx = txCtx
	}
	return dialect.ClassifyContext(ctx, "commit transaction", err)
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which is the normal case after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ResidentRepository() ports.ResidentRepository {
	return residentrepo.NewGormResidentRepository(uow.conn())
}

func (uow *GormUnitOfWork) LockerRepository() ports.LockerRepository {
	return lockerrepo.NewGormLockerRepository(uow.conn())
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn())
}

func (uow *GormUnitOfWork) HardwareSyncRepository() ports.HardwareSyncRepository {
	return lockerlogrepo.NewGormHardwareSyncRepository(uow.conn())
}

func (uow *GormUnitOfWork) AccessAuditRepository() ports.AccessAuditRepository {
	return lockerlogrepo.NewGormAccessAuditRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
