package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pizzeria/internal/pkg/errs"
)

const (
	DefaultRetentionSchedule = "@hourly"
	DefaultLedgerRetention   = 7 * 24 * time.Hour
)

type ledgerPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// WebhookLedgerRetentionJob deletes processed webhook events once they are
// older than the retention window.
type WebhookLedgerRetentionJob struct {
	ledger    ledgerPurger
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	now       func() time.Time
	logger    *slog.Logger
}

func NewWebhookLedgerRetentionJob(
	ledger ledgerPurger,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) (*WebhookLedgerRetentionJob, error) {
	if ledger == nil {
		return nil, errs.NewValueIsRequiredError("ledger")
	}
	if retention <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "∞")
	}
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &WebhookLedgerRetentionJob{
		ledger:    ledger,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
		now:       time.Now,
		logger:    logger.With("component", "webhook_ledger_retention_job"),
	}, nil
}

func (j *WebhookLedgerRetentionJob) Name() string {
	return "webhook ledger retention job"
}

func (j *WebhookLedgerRetentionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Webhook ledger retention job started", "schedule", j.schedule, "retention", j.retention)
	return nil
}

// Stop waits for a running purge to finish.
func (j *WebhookLedgerRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Webhook ledger retention job stopped")
}

// Run performs a single purge.
func (j *WebhookLedgerRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)

	removed, err := j.ledger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			j.logger.ErrorContext(ctx, "Webhook ledger purge failed", "error", err)
		}
		return err
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "Purged processed webhook events", "removed", removed, "cutoff", cutoff)
	}
	return nil
}
