package commands

import (
	"context"
	"errors"

	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

const DefaultPaymentCurrency = "brl"

// CreatePaymentIntentCommandHandler opens a payment intent for an existing order.
type CreatePaymentIntentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	currency   string
}

func NewCreatePaymentIntentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	currency string,
) CreatePaymentIntentCommandHandler {
	if currency == "" {
		currency = DefaultPaymentCurrency
	}
	return CreatePaymentIntentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		currency:   currency,
	}
}

func (h *CreatePaymentIntentCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePaymentIntentCommand,
) (ports.PaymentIntent, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PaymentIntent{}, err
	}

	if err := h.ensureOrderExists(ctx, cmd); err != nil {
		return ports.PaymentIntent{}, err
	}

	intent, err := h.gateway.CreatePaymentIntent(ctx, cmd.Amount(), h.currency, map[string]string{
		orderIDMetadataKey: cmd.OrderID().String(),
	})
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamFailure) {
			return ports.PaymentIntent{}, err
		}
		return ports.PaymentIntent{}, errs.NewUpstreamError("payment gateway", err)
	}

	return intent, nil
}

// ensureOrderExists reads in its own short transaction so no database
// transaction is held open across the gateway call.
func (h *CreatePaymentIntentCommandHandler) ensureOrderExists(ctx context.Context, cmd CreatePaymentIntentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	return err
}
