package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockUpdateOrderStatusHandler struct{ mock.Mock }

func (m *MockUpdateOrderStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockGetAllOrdersHandler struct{ mock.Mock }

func (m *MockGetAllOrdersHandler) Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	v, _ := args.Get(0).([]queries.OrderView)
	return v, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockCreateDeliveryHandler struct{ mock.Mock }

func (m *MockCreateDeliveryHandler) Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockUpdateDeliveryHandler struct{ mock.Mock }

func (m *MockUpdateDeliveryHandler) Handle(ctx context.Context, cmd commands.UpdateDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockPaymentWebhookHandler struct{ mock.Mock }

func (m *MockPaymentWebhookHandler) Handle(ctx context.Context, cmd commands.HandlePaymentWebhookCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCreatePaymentIntentHandler struct{ mock.Mock }

func (m *MockCreatePaymentIntentHandler) Handle(ctx context.Context, cmd commands.CreatePaymentIntentCommand) (ports.PaymentIntent, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.PaymentIntent), args.Error(1)
}
