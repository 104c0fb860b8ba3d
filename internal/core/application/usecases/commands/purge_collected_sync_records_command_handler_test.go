package commands_test

import (
	"errors"
	"testing"
	"time"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeCollectedSyncRecordsCommandHandler_Handle(t *testing.T) {
	t.Run("should purge and commit", func(t *testing.T) {
		factory := new(MockUoWFactory)
		uow := new(MockUoW)
		syncLog := new(MockHardwareSyncRepository)

		factory.On("Create").Return(uow).Once()
		uow.On("HardwareSyncRepository").Return(syncLog).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		mock.InOrder(
			uow.On("Begin", mock.Anything).Return(nil).Once(),
			syncLog.On("PurgeCollected", mock.Anything).Return(int64(4), nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
		)

		handler := commands.NewPurgeCollectedSyncRecordsCommandHandler(syncLogFactory{factory}, time.Second, nil)
		deleted, err := handler.Handle(t.Context(), commands.NewPurgeCollectedSyncRecordsCommand())

		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted)
		factory.AssertExpectations(t)
		uow.AssertExpectations(t)
		syncLog.AssertExpectations(t)
	})

	t.Run("should not commit on failure", func(t *testing.T) {
		factory := new(MockUoWFactory)
		uow := new(MockUoW)
		syncLog := new(MockHardwareSyncRepository)

		factory.On("Create").Return(uow).Once()
		uow.On("HardwareSyncRepository").Return(syncLog).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		syncLog.On("PurgeCollected", mock.Anything).Return(int64(0), errors.New("table locked")).Once()

		handler := commands.NewPurgeCollectedSyncRecordsCommandHandler(syncLogFactory{factory}, time.Second, nil)
		deleted, err := handler.Handle(t.Context(), commands.NewPurgeCollectedSyncRecordsCommand())

		require.ErrorIs(t, err, errs.ErrStorage)
		assert.Zero(t, deleted)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		factory := new(MockUoWFactory)
		handler := commands.NewPurgeCollectedSyncRecordsCommandHandler(syncLogFactory{factory}, 0, nil)

		_, err := handler.Handle(t.Context(), commands.PurgeCollectedSyncRecordsCommand{})

		require.ErrorIs(t, err, commands.ErrPurgeCollectedSyncRecordsCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}
