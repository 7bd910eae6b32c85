package commands

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

const orderIDMetadataKey = "orderId"

var tracer = otel.Tracer("pizzeria/commands")

// OrderStatusUpdater is the single order status mutation point.
type OrderStatusUpdater interface {
	Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error)
}

// HandlePaymentWebhookCommandHandler confirms payment for an order.
//
// Only a failed signature check is returned to the caller. Everything after
// verification is logged and acknowledged, because the gateway retries any
// non-2xx answer and a retry cannot fix a downstream failure.
type HandlePaymentWebhookCommandHandler struct {
	gateway ports.PaymentGateway
	ledger  ports.WebhookEventLedger
	updater OrderStatusUpdater
	logger  *slog.Logger
}

func NewHandlePaymentWebhookCommandHandler(
	gateway ports.PaymentGateway,
	ledger ports.WebhookEventLedger,
	updater OrderStatusUpdater,
	logger *slog.Logger,
) HandlePaymentWebhookCommandHandler {
	return HandlePaymentWebhookCommandHandler{
		gateway: gateway,
		ledger:  ledger,
		updater: updater,
		logger:  logger.With("component", "payment-webhook"),
	}
}

func (h *HandlePaymentWebhookCommandHandler) Handle(ctx context.Context, cmd HandlePaymentWebhookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "PaymentWebhook.Handle")
	defer span.End()

	event, err := h.gateway.ConstructWebhookEvent(cmd.Payload(), cmd.Signature())
	if err != nil {
		span.SetStatus(codes.Error, "signature verification failed")
		span.RecordError(err)
		return errs.NewWebhookError(err)
	}

	span.SetAttributes(
		attribute.String("webhook.event_id", event.ID),
		attribute.String("webhook.event_type", event.Type),
	)
	log := h.logger.With("event_id", event.ID, "event_type", event.Type)

	if event.Type != ports.PaymentSucceededEvent {
		log.DebugContext(ctx, "ignoring webhook event")
		return nil
	}

	if h.alreadyProcessed(ctx, log, event.ID) {
		log.InfoContext(ctx, "webhook event already processed")
		return nil
	}

	orderID, err := kernel.UUIDFromString(event.Metadata[orderIDMetadataKey])
	if err != nil {
		log.WarnContext(ctx, "webhook event has no usable order id", "error", err)
		return nil
	}
	log = log.With("order_id", orderID.String())
	span.SetAttributes(attribute.String("order.id", orderID.String()))

	if err = h.markPaid(ctx, orderID); err != nil {
		log.ErrorContext(ctx, "failed to mark order as paid", "error", err)
		span.RecordError(err)
		return nil
	}

	if event.ID != "" {
		if err = h.ledger.MarkProcessed(ctx, event.ID, event.Type); err != nil {
			log.ErrorContext(ctx, "failed to record processed webhook event", "error", err)
		}
	}

	log.InfoContext(ctx, "order marked as paid")
	return nil
}

func (h *HandlePaymentWebhookCommandHandler) alreadyProcessed(ctx context.Context, log *slog.Logger, eventID string) bool {
	if eventID == "" {
		return false
	}
	processed, err := h.ledger.IsProcessed(ctx, eventID)
	if err != nil {
		log.ErrorContext(ctx, "failed to read webhook ledger", "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
		return false
	}
	return processed
}

func (h *HandlePaymentWebhookCommandHandler) markPaid(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Paid.String())
	if err != nil {
		return err
	}
	_, err = h.updater.Handle(ctx, cmd)
	return err
}
