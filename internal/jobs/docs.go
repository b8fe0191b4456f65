// Package jobs runs the order service's background work on robfig/cron/v3
// schedules with second precision.
//
// ProductionNotificationJob drains the production notification outbox. A
// notification row is written when an order enters PREPARING and tried once on
// the request path, so the job only sees rows whose first attempt failed or
// never ran. Ticks that overlap a running dispatch are skipped.
//
// JobManager starts jobs in order and stops them in reverse:
//
//	manager := jobs.NewJobManager(jobs.NewProductionNotificationJob(handler, "*/10 * * * * *", 50, logger))
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A failing dispatch is logged and the schedule keeps running.
package jobs
