package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrCreateAddressCommandIsNotConstructed = errors.New(
	"CreateAddressCommand must be created via NewCreateAddressCommand constructor",
)

type CreateAddressCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UserID
	details  delivery.PostalDetails
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateAddressCommand accepts optional coordinates; country defaults when empty.
func NewCreateAddressCommand(
	userID kernel.UserID,
	details delivery.PostalDetails,
	location *kernel.Location,
) (CreateAddressCommand, error) {
	if err := userID.Validate(); err != nil {
		return CreateAddressCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return CreateAddressCommand{}, err
		}
	}

	return CreateAddressCommand{
		userID:   userID,
		details:  details,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAddressCommand) Validate() error {
	return c.guard.Validate(ErrCreateAddressCommandIsNotConstructed)
}

func (c CreateAddressCommand) UserID() kernel.UserID           { return c.userID }
func (c CreateAddressCommand) Details() delivery.PostalDetails { return c.details }
func (c CreateAddressCommand) Location() *kernel.Location      { return c.location }
