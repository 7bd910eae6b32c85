package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

type CreateAddressCommandHandler struct {
	uowFactory AddressUoWFactory
}

func NewCreateAddressCommandHandler(uowFactory AddressUoWFactory) CreateAddressCommandHandler {
	return CreateAddressCommandHandler{uowFactory: uowFactory}
}

func (h *CreateAddressCommandHandler) Handle(ctx context.Context, cmd CreateAddressCommand) (*delivery.Address, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	address, err := delivery.NewAddress(kernel.NewUUID(), cmd.UserID(), cmd.Details(), cmd.Location())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AddressRepository().Add(ctx, address); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return address, nil
}
