package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/services"
)

type UpdateAddressCommandHandler struct {
	uowFactory AddressUoWFactory
	ownership  services.OwnershipPolicy
}

func NewUpdateAddressCommandHandler(uowFactory AddressUoWFactory) UpdateAddressCommandHandler {
	return UpdateAddressCommandHandler{
		uowFactory: uowFactory,
		ownership:  services.NewOwnershipPolicy(),
	}
}

func (h *UpdateAddressCommandHandler) Handle(ctx context.Context, cmd UpdateAddressCommand) (*delivery.Address, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressRepository()
	address, err := repo.Get(ctx, cmd.AddressID())
	if err != nil {
		return nil, err
	}

	if err = h.ownership.Authorize(services.AsRequester(cmd.UserID()), address.UserID(),
		"address", address.ID().String()); err != nil {
		return nil, err
	}

	if err = address.Apply(cmd.Patch()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, address); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return address, nil
}
