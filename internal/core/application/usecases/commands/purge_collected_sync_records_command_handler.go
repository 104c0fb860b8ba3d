package commands

import (
	"context"
	"log/slog"
	"time"
)

type PurgeCollectedSyncRecordsCommandHandler struct {
	uowFactory SyncLogUoWFactory
	txTimeout  time.Duration
	logger     *slog.Logger
}

func NewPurgeCollectedSyncRecordsCommandHandler(
	uowFactory SyncLogUoWFactory,
	txTimeout time.Duration,
	logger *slog.Logger,
) PurgeCollectedSyncRecordsCommandHandler {
	return PurgeCollectedSyncRecordsCommandHandler{
		uowFactory: uowFactory,
		txTimeout:  txTimeout,
		logger:     componentLogger(logger, "sync_cleanup"),
	}
}

// Handle returns the number of rows removed.
func (h PurgeCollectedSyncRecordsCommandHandler) Handle(ctx context.Context, cmd PurgeCollectedSyncRecordsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := withTxTimeout(ctx, h.txTimeout)
	defer cancel()

	deleted, err := h.purge(ctx)
	if err != nil {
		return 0, txFailure(ctx, "purge collected sync records", err)
	}

	if deleted > 0 {
		h.logger.InfoContext(ctx, "collected sync records purged", "deleted", deleted)
	}
	return deleted, nil
}

func (h PurgeCollectedSyncRecordsCommandHandler) purge(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.HardwareSyncRepository().PurgeCollected(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
