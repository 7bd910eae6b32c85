package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand binds a routed delivery to an order the user owns.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UserID
	orderID   kernel.UUID
	addressID kernel.UUID
	status    delivery.Status
	schedule  delivery.Schedule

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand defaults an empty status to PENDING.
func NewCreateDeliveryCommand(
	userID kernel.UserID,
	orderID kernel.UUID,
	addressID kernel.UUID,
	status string,
	schedule delivery.Schedule,
) (CreateDeliveryCommand, error) {
	if status == "" {
		status = delivery.Pending.String()
	}
	parsed, statusErr := delivery.ParseStatus(status)

	if err := errors.Join(
		userID.Validate(),
		orderID.Validate(),
		addressID.Validate(),
		statusErr,
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return CreateDeliveryCommand{
		userID:    userID,
		orderID:   orderID,
		addressID: addressID,
		status:    parsed,
		schedule:  schedule,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) UserID() kernel.UserID       { return c.userID }
func (c CreateDeliveryCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateDeliveryCommand) AddressID() kernel.UUID      { return c.addressID }
func (c CreateDeliveryCommand) Status() delivery.Status     { return c.status }
func (c CreateDeliveryCommand) Schedule() delivery.Schedule { return c.schedule }
