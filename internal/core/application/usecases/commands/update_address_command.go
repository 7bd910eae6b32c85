package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrUpdateAddressCommandIsNotConstructed = errors.New(
	"UpdateAddressCommand must be created via NewUpdateAddressCommand constructor",
)

// UpdateAddressCommand is a partial update of an address by its owner.
type UpdateAddressCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UserID
	addressID kernel.UUID
	patch     delivery.AddressPatch

	guard guard.ConstructorGuard
}

func NewUpdateAddressCommand(
	userID kernel.UserID,
	addressID kernel.UUID,
	patch delivery.AddressPatch,
) (UpdateAddressCommand, error) {
	if err := errors.Join(userID.Validate(), addressID.Validate()); err != nil {
		return UpdateAddressCommand{}, err
	}

	return UpdateAddressCommand{
		userID:    userID,
		addressID: addressID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAddressCommandIsNotConstructed)
}

func (c UpdateAddressCommand) UserID() kernel.UserID        { return c.userID }
func (c UpdateAddressCommand) AddressID() kernel.UUID       { return c.addressID }
func (c UpdateAddressCommand) Patch() delivery.AddressPatch { return c.patch }
