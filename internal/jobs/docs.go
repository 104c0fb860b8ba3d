// Package jobs runs the scheduled maintenance of the locker engine using
// github.com/robfig/cron/v3.
//
// SyncCleanupJob purges hardware sync records whose action is "collected".
// The schedule uses the six-field cron syntax with seconds; the default is
// DefaultSyncCleanupSchedule.
//
//	manager := jobs.NewJobManager(jobs.NewSyncCleanupJob(purgeHandler, "", time.Minute, logger))
//	if err := manager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer manager.StopAll()
package jobs
