package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
)

// CreateOrderResult is the persisted order and, when an address was given,
// its delivery stub.
type CreateOrderResult struct {
	Order    *order.Order
	Delivery *delivery.Delivery
}

// CreateOrderCommandHandler prices and persists a new order.
//
// The catalog read, the address ownership check, the order insert and the
// delivery stub insert share one transaction: either all of them are visible
// or none is. The PENDING status event is published after commit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
	ownership  services.OwnershipPolicy
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     services.NewOrderPricer(),
		ownership:  services.NewOwnershipPolicy(),
		now:        time.Now,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := cmd.Lines()
	ids, err := services.UniquePizzaIDs(lines)
	if err != nil {
		return CreateOrderResult{}, err
	}

	pizzas, err := uow.PizzaRepository().GetByIDs(ctx, ids)
	if err != nil {
		return CreateOrderResult{}, err
	}

	items, err := h.pricer.Price(lines, pizzas)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if addressID := cmd.AddressID(); addressID != nil {
		address, addrErr := uow.AddressRepository().Get(ctx, *addressID)
		if addrErr != nil {
			return CreateOrderResult{}, addrErr
		}
		requester := cmd.UserID()
		if addrErr = h.ownership.Authorize(&requester, address.UserID(), "address", addressID.String()); addrErr != nil {
			return CreateOrderResult{}, addrErr
		}
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), items, h.now())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	result := CreateOrderResult{Order: o}
	if addressID := cmd.AddressID(); addressID != nil {
		stub, stubErr := delivery.NewStub(kernel.NewUUID(), o.ID(), *addressID)
		if stubErr != nil {
			return CreateOrderResult{}, stubErr
		}
		if stubErr = uow.DeliveryRepository().Add(ctx, stub); stubErr != nil {
			return CreateOrderResult{}, stubErr
		}
		result.Delivery = stub
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return result, nil
}
