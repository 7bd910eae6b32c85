package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// At most one delivery exists per order.
type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists status, route, address and schedule changes.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID returns errs.ErrObjectNotFound if the order has no delivery.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}

// AddressRepository defines the persistence contract for customer addresses.
type AddressRepository interface {
	Add(ctx context.Context, address *delivery.Address) error
	Update(ctx context.Context, address *delivery.Address) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Address, error)
	GetAllByUser(ctx context.Context, userID kernel.UserID) ([]*delivery.Address, error)
}
