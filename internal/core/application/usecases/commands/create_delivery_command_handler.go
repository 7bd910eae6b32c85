package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ErrAddressHasNoCoordinates is returned before any routing lookup for an
// address that cannot be used as a destination.
var ErrAddressHasNoCoordinates = errs.NewValueIsRequiredErrorWithCause("address coordinates",
	errors.New("address must have latitude and longitude to create a delivery"))

// CreateDeliveryCommandHandler routes an order to an address.
//
// Ownership of the order and of the address, the coordinate check and the
// "already routed" check all run before the routing lookup. The lookup is
// bounded by lookupTimeout; any failure aborts without persisting anything.
// If order creation left a stub, the stub is resolved in place.
type CreateDeliveryCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	geo           ports.GeoClient
	origin        kernel.Location
	lookupTimeout time.Duration
	ownership     services.OwnershipPolicy
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	geo ports.GeoClient,
	origin kernel.Location,
	lookupTimeout time.Duration,
) (CreateDeliveryCommandHandler, error) {
	if err := origin.Validate(); err != nil {
		return CreateDeliveryCommandHandler{}, err
	}
	if lookupTimeout <= 0 {
		return CreateDeliveryCommandHandler{}, errs.NewValueIsInvalidError("lookup timeout")
	}

	return CreateDeliveryCommandHandler{
		uowFactory:    uowFactory,
		geo:           geo,
		origin:        origin,
		lookupTimeout: lookupTimeout,
		ownership:     services.NewOwnershipPolicy(),
	}, nil
}

func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
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

	requester := services.AsRequester(cmd.UserID())

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.ownership.Authorize(requester, o.UserID(), "order", o.ID().String()); err != nil {
		return nil, err
	}

	address, err := uow.AddressRepository().Get(ctx, cmd.AddressID())
	if err != nil {
		return nil, err
	}
	if err = h.ownership.Authorize(requester, address.UserID(), "address", address.ID().String()); err != nil {
		return nil, err
	}
	if !address.HasCoordinates() {
		return nil, ErrAddressHasNoCoordinates
	}

	deliveryRepo := uow.DeliveryRepository()
	existing, err := deliveryRepo.GetByOrderID(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		existing = nil
	case err != nil:
		return nil, err
	default:
		if err = existing.CheckResolvable(cmd.Status()); err != nil {
			return nil, err
		}
	}

	route, err := h.lookupRoute(ctx, *address.Location())
	if err != nil {
		return nil, err
	}

	var result *delivery.Delivery
	if existing != nil {
		if err = existing.ResolveRoute(address.ID(), cmd.Status(), route, cmd.Schedule()); err != nil {
			return nil, err
		}
		if err = deliveryRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		result = existing
	} else {
		result, err = delivery.NewDelivery(kernel.NewUUID(), o.ID(), address.ID(), cmd.Status(), route, cmd.Schedule())
		if err != nil {
			return nil, err
		}
		if err = deliveryRepo.Add(ctx, result); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (h *CreateDeliveryCommandHandler) lookupRoute(ctx context.Context, destination kernel.Location) (delivery.Route, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	r, err := h.geo.GetDistanceAndDuration(lookupCtx, h.origin, destination)
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamFailure) {
			return delivery.Route{}, err
		}
		return delivery.Route{}, errs.NewUpstreamError("geo", err)
	}

	route, err := delivery.NewRoute(r.DistanceText, r.DistanceValue, r.DurationText, r.DurationValue)
	if err != nil {
		return delivery.Route{}, errs.NewUpstreamError("geo", err)
	}
	return route, nil
}
