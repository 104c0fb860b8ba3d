// Package dialect holds the pieces of persistence that differ between the
// supported stores: row locking and the mapping of driver errors onto the
// errs taxonomy.
package dialect

import (
	"context"
	"database/sql"
	"errors"

	"parcellocker/internal/pkg/errs"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// Name returns the dialect of db.
func Name(db *gorm.DB) string {
	return db.Dialector.Name()
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available.
// SQLite serializes writers on the database file instead.
func SupportsRowLocks(db *gorm.DB) bool {
	switch Name(db) {
	case Postgres, MySQL:
		return true
	default:
		return false
	}
}

// ForUpdate locks the selected rows until the transaction ends.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if !SupportsRowLocks(db) {
		return db
	}
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// ForUpdateSkipLocked locks the selected rows and skips rows another
// transaction already holds.
func ForUpdateSkipLocked(db *gorm.DB) *gorm.DB {
	if !SupportsRowLocks(db) {
		return db
	}
	return db.Clauses(clause.Locking{
		Strength: clause.LockingStrengthUpdate,
		Options:  clause.LockingOptionsSkipLocked,
	})
}

// Postgres SQLSTATEs that mean "try again".
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// MySQL error numbers that mean "try again".
const (
	myLockWaitTimeout   = 1205
	myDeadlock          = 1213
	myLockNowaitTimeout = 3572
)

// IsTransient reports whether err is a lock, serialization or deadline
// failure that leaves nothing behind once the transaction rolls back.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myLockWaitTimeout, myDeadlock, myLockNowaitTimeout:
			return true
		}
		return false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	return false
}

// Classify turns a driver error raised by op into an errs.ConflictError or
// errs.StorageError. Errors that already carry a kind are returned as is.
func Classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrStorage),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return err
	case IsTransient(err):
		return errs.NewConflictError(op, err)
	default:
		return errs.NewStorageError(op, err)
	}
}

// ClassifyContext is Classify for calls bound to ctx. Once ctx is done the
// driver has already rolled the transaction back, so whatever it reports,
// typically sql.ErrTxDone, is a Conflict.
func ClassifyContext(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, errs.ErrConflict) {
		if errors.Is(err, sql.ErrTxDone) || IsTransient(err) || !isTyped(err) {
			return errs.NewConflictError(op, errors.Join(err, ctxErr))
		}
	}
	return Classify(op, err)
}

func isTyped(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

// ExpectOneRow converts a conditional write that matched nothing into a
// conflict: the row changed state since it was read.
func ExpectOneRow(op string, result *gorm.DB) error {
	if result.Error != nil {
		return Classify(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError(op, nil)
	}
	return nil
}
