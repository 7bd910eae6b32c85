// Package natsbus mirrors committed status changes onto NATS subjects so
// processes other than the one holding the realtime hub can follow orders.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

const (
	DefaultSubjectPrefix = "pizzeria.orders"
	eventTypeHeader      = "Event-Type"
)

var tracer = otel.Tracer("pizzeria/natsbus")

var _ ports.EventPublisher = (*Publisher)(nil)

type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// StatusMessage is the JSON body published on <prefix>.<orderId>.
type StatusMessage struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	DeliveryID string    `json:"deliveryId,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher struct {
	conn   msgPublisher
	prefix string
	now    func() time.Time
	logger *slog.Logger
}

func NewPublisher(conn msgPublisher, prefix string, logger *slog.Logger) (*Publisher, error) {
	if conn == nil {
		return nil, errs.NewValueIsRequiredError("nats connection")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Publisher{
		conn:   conn,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With("component", "nats-publisher"),
	}, nil
}

// Subject returns the subject status changes of orderID are published on.
func (p *Publisher) Subject(orderID kernel.UUID) string {
	return p.prefix + "." + orderID.String()
}

func (p *Publisher) Publish(ctx context.Context, event kernel.DomainEvent) error {
	var body StatusMessage
	switch e := event.(type) {
	case order.StatusChanged:
		body = StatusMessage{OrderID: e.OrderID.String(), Status: e.Status.String()}
	case delivery.StatusChanged:
		body = StatusMessage{
			OrderID:    e.OrderID.String(),
			DeliveryID: e.DeliveryID.String(),
			Status:     e.Status.String(),
		}
	default:
		return nil
	}
	body.Event = event.EventName()
	body.OccurredAt = p.now()

	ctx, span := tracer.Start(ctx, "Publisher.Publish")
	defer span.End()

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", body.Event, err)
	}

	msg := &nats.Msg{
		Subject: p.prefix + "." + body.OrderID,
		Header:  nats.Header{},
		Data:    data,
	}
	msg.Header.Set(eventTypeHeader, body.Event)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	if err = p.conn.PublishMsg(msg); err != nil {
		span.SetStatus(codes.Error, "publish failed")
		span.RecordError(err)
		p.logger.ErrorContext(ctx, "failed to publish status change",
			"subject", msg.Subject, "event", body.Event, "error", err)
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}
