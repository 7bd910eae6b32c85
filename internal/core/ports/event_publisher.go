package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to interested parties.
// Delivery is best effort; a failure never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event kernel.DomainEvent) error
}
