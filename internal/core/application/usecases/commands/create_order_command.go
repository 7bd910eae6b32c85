package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for a user, optionally naming the
// address the order will be delivered to.
//
//	cmd, err := NewCreateOrderCommand(userID, []services.LineRequest{{PizzaID: 1, Quantity: 2}}, &addressID)
//	if err != nil {
//	    return err // bad request
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UserID
	lines     []services.LineRequest
	addressID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the requested lines: at least one, every
// quantity positive, no pizza repeated.
func NewCreateOrderCommand(
	userID kernel.UserID,
	lines []services.LineRequest,
	addressID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setLines(lines),
		cmd.setAddressID(addressID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() kernel.UserID { return c.userID }

func (c CreateOrderCommand) Lines() []services.LineRequest {
	lines := make([]services.LineRequest, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// AddressID is nil when the order is created without a delivery address.
func (c CreateOrderCommand) AddressID() *kernel.UUID { return c.addressID }

func (c *CreateOrderCommand) setUserID(userID kernel.UserID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.LineRequest) error {
	if len(lines) == 0 {
		return order.ErrOrderHasNoItems
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("quantity must be greater than 0"))
		}
	}
	if _, err := services.UniquePizzaIDs(lines); err != nil {
		return err
	}

	c.lines = make([]services.LineRequest, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	id := *addressID
	c.addressID = &id
	return nil
}
