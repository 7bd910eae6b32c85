// Package jobs provides scheduled background tasks for the pizzeria service.
//
// Jobs are cron-driven (github.com/robfig/cron/v3) and managed together
// through JobManager:
//
//	jobManager := jobs.NewJobManager(logger, retentionJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// WebhookLedgerRetentionJob purges processed payment webhook events older than
// the configured retention. The gateway stops redelivering an event after a
// few days, so old ledger rows no longer guard against anything.
//
// A job that fails to start stops every job started before it.
package jobs
