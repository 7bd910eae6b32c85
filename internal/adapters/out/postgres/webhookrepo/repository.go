// Package webhookrepo is the processed payment webhook ledger.
package webhookrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessedEventDTO records a gateway event that was applied.
type ProcessedEventDTO struct {
	EventID     string    `gorm:"type:varchar(255);primaryKey"`
	EventType   string    `gorm:"type:varchar(128);not null"`
	ProcessedAt time.Time `gorm:"not null;index"`
}

func (ProcessedEventDTO) TableName() string {
	return "processed_webhook_events"
}

// GormWebhookEventLedger implements ports.WebhookEventLedger. It works outside
// any unit of work: a ledger write never joins the order transaction.
type GormWebhookEventLedger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormWebhookEventLedger(db *gorm.DB) *GormWebhookEventLedger {
	return &GormWebhookEventLedger{db: db, now: time.Now}
}

func (l *GormWebhookEventLedger) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&ProcessedEventDTO{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkProcessed is idempotent: recording the same event twice keeps the first row.
func (l *GormWebhookEventLedger) MarkProcessed(ctx context.Context, eventID, eventType string) error {
	dto := ProcessedEventDTO{
		EventID:     eventID,
		EventType:   eventType,
		ProcessedAt: l.now().UTC(),
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

func (l *GormWebhookEventLedger) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := l.db.WithContext(ctx).
		Where("processed_at < ?", cutoff).
		Delete(&ProcessedEventDTO{})
	return result.RowsAffected, result.Error
}
