package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/services"
)

// UpdateDeliveryCommandHandler changes a delivery owned (through its order)
// by the requesting user.
type UpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	ownership  services.OwnershipPolicy
}

func NewUpdateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		ownership:  services.NewOwnershipPolicy(),
	}
}

func (h *UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) (*delivery.Delivery, error) {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, d.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.ownership.Authorize(services.AsRequester(cmd.UserID()), o.UserID(),
		"delivery", d.ID().String()); err != nil {
		return nil, err
	}

	if status := cmd.Status(); status != nil {
		if err = d.ChangeStatus(*status); err != nil {
			return nil, err
		}
	}
	d.Reschedule(cmd.Schedule())

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
