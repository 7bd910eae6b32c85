package delivery

import "pizzeria/internal/core/domain/model/kernel"

const StatusChangedEventName = "delivery.status_changed"

// StatusChanged is raised when a routed delivery is created or its status is
// written. It is addressed to the parent order's subscribers.
type StatusChanged struct {
	DeliveryID kernel.UUID
	OrderID    kernel.UUID
	Status     Status
}

func (StatusChanged) EventName() string {
	return StatusChangedEventName
}
