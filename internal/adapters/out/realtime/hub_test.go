package realtime_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/adapters/out/realtime"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

func newHub(t *testing.T, buffer int) *realtime.Hub {
	t.Helper()
	h, err := realtime.NewHub(buffer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return h
}

func receive(t *testing.T, c *realtime.Connection) realtime.Message {
	t.Helper()
	select {
	case msg := <-c.Messages():
		return msg
	default:
		require.FailNow(t, "expected a queued message")
		return realtime.Message{}
	}
}

func assertEmpty(t *testing.T, c *realtime.Connection) {
	t.Helper()
	select {
	case msg := <-c.Messages():
		assert.Failf(t, "unexpected message", "%+v", msg)
	default:
	}
}

func TestHub_JoinAcknowledges(t *testing.T) {
	h := newHub(t, 4)
	c, err := h.Connect("c1")
	require.NoError(t, err)
	orderID := kernel.NewUUID()

	require.NoError(t, h.Join(context.Background(), "c1", orderID))

	msg := receive(t, c)
	assert.Equal(t, realtime.EventSubscribed, msg.Event)
	assert.Equal(t, "Subscribed to order "+orderID.String(), msg.Data)
	assert.Equal(t, 1, h.Size(orderID))
}

func TestHub_JoinUnknownConnection(t *testing.T) {
	h := newHub(t, 4)
	err := h.Join(context.Background(), "ghost", kernel.NewUUID())
	require.ErrorIs(t, err, realtime.ErrUnknownConnection)
}

func TestHub_ConnectDuplicate(t *testing.T) {
	h := newHub(t, 4)
	_, err := h.Connect("c1")
	require.NoError(t, err)
	_, err = h.Connect("c1")
	require.ErrorIs(t, err, realtime.ErrConnectionExists)
}

func TestHub_BroadcastReachesOnlyGroupMembers(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 4)
	orderID := kernel.NewUUID()

	member, _ := h.Connect("member")
	other, _ := h.Connect("other")
	idle, _ := h.Connect("idle")
	require.NoError(t, h.Join(ctx, "member", orderID))
	require.NoError(t, h.Join(ctx, "other", kernel.NewUUID()))
	receive(t, member)
	receive(t, other)

	delivered := h.BroadcastOrderStatus(ctx, orderID, "PAID")

	assert.Equal(t, 1, delivered)
	msg := receive(t, member)
	assert.Equal(t, realtime.EventOrderStatusUpdate, msg.Event)
	assert.Equal(t, realtime.OrderStatusUpdate{OrderID: orderID.String(), Status: "PAID"}, msg.Data)
	assertEmpty(t, other)
	assertEmpty(t, idle)
}

func TestHub_LateJoinerGetsNoHistory(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 4)
	orderID := kernel.NewUUID()

	assert.Zero(t, h.BroadcastOrderStatus(ctx, orderID, "PAID"))

	c, _ := h.Connect("late")
	require.NoError(t, h.Join(ctx, "late", orderID))
	assert.Equal(t, realtime.EventSubscribed, receive(t, c).Event)
	assertEmpty(t, c)
}

func TestHub_FullBufferDropsMessage(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 1)
	orderID := kernel.NewUUID()
	c, _ := h.Connect("slow")
	require.NoError(t, h.Join(ctx, "slow", orderID))

	assert.Zero(t, h.BroadcastOrderStatus(ctx, orderID, "PAID"))
	assert.Equal(t, realtime.EventSubscribed, receive(t, c).Event)
	assert.Equal(t, 1, h.BroadcastOrderStatus(ctx, orderID, "DELIVERED"))
}

func TestHub_LeaveAndDisconnect(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 4)
	orderID := kernel.NewUUID()
	c, _ := h.Connect("c1")
	require.NoError(t, h.Join(ctx, "c1", orderID))

	h.Leave("c1", orderID)
	assert.Zero(t, h.Size(orderID))

	require.NoError(t, h.Join(ctx, "c1", orderID))
	h.Disconnect("c1")
	h.Disconnect("c1")
	assert.Zero(t, h.Size(orderID))

	for range c.Messages() {
	}
	_, err := h.Connect("c1")
	require.NoError(t, err)
}

func TestHub_PublishMapsDomainEvents(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 4)
	orderID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()
	c, _ := h.Connect("c1")
	require.NoError(t, h.Join(ctx, "c1", orderID))
	receive(t, c)

	require.NoError(t, h.Publish(ctx, order.StatusChanged{OrderID: orderID, Status: order.Paid}))
	require.NoError(t, h.Publish(ctx, delivery.StatusChanged{
		DeliveryID: deliveryID, OrderID: orderID, Status: delivery.InTransit,
	}))

	assert.Equal(t, realtime.Message{
		Event: realtime.EventOrderStatusUpdate,
		Data:  realtime.OrderStatusUpdate{OrderID: orderID.String(), Status: "PAID"},
	}, receive(t, c))
	assert.Equal(t, realtime.Message{
		Event: realtime.EventDeliveryStatusUpdate,
		Data: realtime.DeliveryStatusUpdate{
			OrderID: orderID.String(), DeliveryID: deliveryID.String(), Status: "IN_TRANSIT",
		},
	}, receive(t, c))
}

func TestHub_ConcurrentJoinBroadcastDisconnect(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 2)
	orderID := kernel.NewUUID()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("c%d", i)
			if _, err := h.Connect(id); err != nil {
				return
			}
			_ = h.Join(ctx, id, orderID)
			h.BroadcastOrderStatus(ctx, orderID, "PAID")
			h.Disconnect(id)
		}()
	}
	wg.Wait()

	assert.Zero(t, h.Size(orderID))
}

func TestHub_SendTargetsOneConnection(t *testing.T) {
	ctx := context.Background()
	h := newHub(t, 4)
	a, _ := h.Connect("a")
	b, _ := h.Connect("b")

	assert.True(t, h.Send(ctx, "a", realtime.Message{Event: realtime.EventError, Data: "bad"}))
	assert.False(t, h.Send(ctx, "ghost", realtime.Message{Event: realtime.EventError}))

	assert.Equal(t, realtime.EventError, receive(t, a).Event)
	assertEmpty(t, b)
}
