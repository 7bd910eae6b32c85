package order

import "pizzeria/internal/core/domain/model/kernel"

const StatusChangedEventName = "order.status_changed"

// StatusChanged is raised whenever an order status is written, including
// idempotent re-writes.
type StatusChanged struct {
	OrderID kernel.UUID
	Status  Status
}

func (StatusChanged) EventName() string {
	return StatusChangedEventName
}
