package ports

import (
	"context"
	"time"
)

// WebhookEventLedger records payment gateway events that were applied, so a
// redelivered event is acknowledged without being applied twice.
type WebhookEventLedger interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string) error

	// PurgeOlderThan deletes entries recorded before cutoff and returns how many were removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
