package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcellocker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSyncCleanupSchedule runs the cleanup every 15 minutes.
const DefaultSyncCleanupSchedule = "0 */15 * * * *"

type SyncPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeCollectedSyncRecordsCommand) (int64, error)
}

// SyncCleanupJob drops hardware sync rows that reached "collected".
type SyncCleanupJob struct {
	handler  SyncPurger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSyncCleanupJob(handler SyncPurger, schedule string, timeout time.Duration, logger *slog.Logger) *SyncCleanupJob {
	if schedule == "" {
		schedule = DefaultSyncCleanupSchedule
	}
	return &SyncCleanupJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "sync_cleanup_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *SyncCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if j.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, j.timeout)
			defer cancel()
		}
		_, _ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Sync cleanup job started", "schedule", j.schedule)
	return nil
}

// Run performs a single purge. Failures are logged and returned.
func (j *SyncCleanupJob) Run(ctx context.Context) (int64, error) {
	deleted, err := j.handler.Handle(ctx, commands.NewPurgeCollectedSyncRecordsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Sync cleanup failed", "error", err, "retryable", commands.IsRetryable(err))
		return 0, err
	}
	return deleted, nil
}

// Stop waits for a running purge to finish.
func (j *SyncCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Sync cleanup job stopped")
}
