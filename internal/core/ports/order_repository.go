// Package ports defines the contracts between the application core and its
// adapters: persistence, the unit of work, the payment gateway, the routing
// provider and the event publisher.
package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the aggregate's current status with a single
	// conditional update guarded by order.AllowedPredecessors. If the stored
	// status changed concurrently to one that does not allow the write, the
	// update is rejected with errs.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error
}
