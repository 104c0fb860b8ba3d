package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	postgres_adapter "parcellocker/internal/adapters/out/postgres"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/locker"
	"parcellocker/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: conn}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormUnitOfWork_BeginFailure(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		sentinel error
	}{
		{name: "lock not available", cause: &pgconn.PgError{Code: "55P03"}, sentinel: errs.ErrConflict},
		{name: "deadline", cause: context.DeadlineExceeded, sentinel: errs.ErrConflict},
		{name: "connection refused", cause: errors.New("dial tcp: connection refused"), sentinel: errs.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin().WillReturnError(tt.cause)

			uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()
			err := uow.Begin(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormUnitOfWork_CommitFailure(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		sentinel error
	}{
		{name: "serialization failure", cause: &pgconn.PgError{Code: "40001"}, sentinel: errs.ErrConflict},
		{name: "deadlock", cause: &pgconn.PgError{Code: "40P01"}, sentinel: errs.ErrConflict},
		{name: "disk full", cause: &pgconn.PgError{Code: "53100"}, sentinel: errs.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectCommit().WillReturnError(tt.cause)

			uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()
			require.NoError(t, uow.Begin(context.Background()))

			err := uow.Commit(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, uow.Rollback(context.Background()), gorm.ErrInvalidTransaction,
				"a failed commit still ends the transaction")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormUnitOfWork_CommitWithoutBegin(t *testing.T) {
	db, mock := newMockDB(t)

	err := postgres_adapter.NewGormUnitOfWorkFactory(db).Create().Commit(context.Background())

	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUnitOfWork_RepositoriesRunOnTheTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "lockers" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	ctx := context.Background()
	uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()
	require.NoError(t, uow.Begin(ctx))

	l, err := locker.NewLocker(kernel.NewUUID(), kernel.NewUUID(), 5, kernel.SizeMedium)
	require.NoError(t, err)

	err = uow.LockerRepository().Update(ctx, l, locker.Occupied)

	assert.ErrorIs(t, err, errs.ErrConflict, "no matching row means another writer got there first")
	require.NoError(t, uow.Rollback(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormHardwareSyncRepository_PurgeCollected(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "hardware_sync" WHERE action = $1`)).
		WithArgs("collected").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	ctx := context.Background()
	uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()
	require.NoError(t, uow.Begin(ctx))

	removed, err := uow.HardwareSyncRepository().PurgeCollected(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	require.NoError(t, uow.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Ping(t *testing.T) {
	db, mock := newMockDB(t)
	store := postgres_adapter.NewStore(db)

	mock.ExpectPing()
	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	assert.Error(t, store.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenStore_UnsupportedDriver(t *testing.T) {
	_, err := postgres_adapter.OpenStore(context.Background(), postgres_adapter.StoreConfig{Driver: "oracle"})

	assert.ErrorIs(t, err, postgres_adapter.ErrUnsupportedDriver)
}
