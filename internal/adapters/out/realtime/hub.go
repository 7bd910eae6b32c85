// Package realtime keeps order-scoped subscriber groups in memory and pushes
// status changes to them. Delivery is at-most-once: there is no history, and a
// subscriber whose buffer is full misses the message.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

const (
	EventSubscribed           = "subscribed"
	EventOrderStatusUpdate    = "orderStatusUpdate"
	EventDeliveryStatusUpdate = "deliveryStatusUpdate"
	EventError                = "error"

	DefaultBufferSize = 16
)

var tracer = otel.Tracer("pizzeria/realtime")

var (
	ErrConnectionExists  = errors.New("connection already registered")
	ErrUnknownConnection = errors.New("connection is not registered")
)

var _ ports.EventPublisher = (*Hub)(nil)

// Message is one server to client frame.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type OrderStatusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type DeliveryStatusUpdate struct {
	OrderID    string `json:"orderId"`
	DeliveryID string `json:"deliveryId"`
	Status     string `json:"status"`
}

// Connection is a registered subscriber. Its channel is closed by Disconnect.
type Connection struct {
	id     string
	send   chan Message
	groups map[kernel.UUID]struct{}
}

func (c *Connection) ID() string               { return c.id }
func (c *Connection) Messages() <-chan Message { return c.send }

type Hub struct {
	mu         sync.RWMutex
	conns      map[string]*Connection
	groups     map[kernel.UUID]map[string]*Connection
	bufferSize int
	logger     *slog.Logger
}

func NewHub(bufferSize int, logger *slog.Logger) (*Hub, error) {
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		conns:      make(map[string]*Connection),
		groups:     make(map[kernel.UUID]map[string]*Connection),
		bufferSize: bufferSize,
		logger:     logger.With("component", "realtime-hub"),
	}, nil
}

func (h *Hub) Connect(id string) (*Connection, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("connection id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrConnectionExists, id)
	}
	c := &Connection{
		id:     id,
		send:   make(chan Message, h.bufferSize),
		groups: make(map[kernel.UUID]struct{}),
	}
	h.conns[id] = c
	return c, nil
}

// Disconnect drops the connection from every group and closes its channel.
// Unknown ids are ignored.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[id]
	if !ok {
		return
	}
	for orderID := range c.groups {
		h.removeFromGroup(orderID, id)
	}
	delete(h.conns, id)
	close(c.send)
}

// Join adds the connection to the order's group and queues the acknowledgement.
func (h *Hub) Join(ctx context.Context, connectionID string, orderID kernel.UUID) error {
	_, span := tracer.Start(ctx, "Hub.Join")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID.String()))

	if err := orderID.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connectionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConnection, connectionID)
	}

	group, ok := h.groups[orderID]
	if !ok {
		group = make(map[string]*Connection)
		h.groups[orderID] = group
	}
	group[connectionID] = c
	c.groups[orderID] = struct{}{}

	h.offer(ctx, c, Message{Event: EventSubscribed, Data: "Subscribed to order " + orderID.String()})
	return nil
}

// Send queues msg for a single connection. It reports false when the
// connection is unknown or its buffer is full.
func (h *Hub) Send(ctx context.Context, connectionID string, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.conns[connectionID]
	if !ok {
		return false
	}
	return h.offer(ctx, c, msg)
}

func (h *Hub) Leave(connectionID string, orderID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.conns[connectionID]; ok {
		delete(c.groups, orderID)
	}
	h.removeFromGroup(orderID, connectionID)
}

// BroadcastOrderStatus sends an orderStatusUpdate to the order's group and
// reports how many connections accepted it.
func (h *Hub) BroadcastOrderStatus(ctx context.Context, orderID kernel.UUID, status string) int {
	return h.broadcast(ctx, orderID, Message{
		Event: EventOrderStatusUpdate,
		Data:  OrderStatusUpdate{OrderID: orderID.String(), Status: status},
	})
}

func (h *Hub) BroadcastDeliveryStatus(ctx context.Context, orderID, deliveryID kernel.UUID, status string) int {
	return h.broadcast(ctx, orderID, Message{
		Event: EventDeliveryStatusUpdate,
		Data: DeliveryStatusUpdate{
			OrderID:    orderID.String(),
			DeliveryID: deliveryID.String(),
			Status:     status,
		},
	})
}

// Publish maps committed status changes onto the order groups. Other events
// are ignored.
func (h *Hub) Publish(ctx context.Context, event kernel.DomainEvent) error {
	switch e := event.(type) {
	case order.StatusChanged:
		h.BroadcastOrderStatus(ctx, e.OrderID, e.Status.String())
	case delivery.StatusChanged:
		h.BroadcastDeliveryStatus(ctx, e.OrderID, e.DeliveryID, e.Status.String())
	}
	return nil
}

// Size returns the number of connections in the order's group.
func (h *Hub) Size(orderID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[orderID])
}

func (h *Hub) broadcast(ctx context.Context, orderID kernel.UUID, msg Message) int {
	ctx, span := tracer.Start(ctx, "Hub.Broadcast")
	defer span.End()

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, c := range h.groups[orderID] {
		if h.offer(ctx, c, msg) {
			delivered++
		}
	}

	span.SetAttributes(
		attribute.String("order.id", orderID.String()),
		attribute.String("realtime.event", msg.Event),
		attribute.Int("realtime.delivered", delivered),
	)
	h.logger.DebugContext(ctx, "broadcast",
		"orderId", orderID.String(), "event", msg.Event, "delivered", delivered)
	return delivered
}

// offer must be called with h.mu held so the channel cannot be closed concurrently.
func (h *Hub) offer(ctx context.Context, c *Connection, msg Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		h.logger.WarnContext(ctx, "subscriber buffer full, message dropped",
			"connectionId", c.id, "event", msg.Event)
		return false
	}
}

func (h *Hub) removeFromGroup(orderID kernel.UUID, connectionID string) {
	group, ok := h.groups[orderID]
	if !ok {
		return
	}
	delete(group, connectionID)
	if len(group) == 0 {
		delete(h.groups, orderID)
	}
}
