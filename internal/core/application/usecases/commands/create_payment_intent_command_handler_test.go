package commands_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

func TestNewCreatePaymentIntentCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewCreatePaymentIntentCommand(id.String(), decimal.RequireFromString("79.80"))
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())

	_, err = commands.NewCreatePaymentIntentCommand("", decimal.RequireFromString("10"))
	require.ErrorIs(t, err, commands.ErrMissingAmountOrOrderID)
	assert.Contains(t, err.Error(), "missing amount or orderId")

	_, err = commands.NewCreatePaymentIntentCommand(id.String(), decimal.Zero)
	require.ErrorIs(t, err, commands.ErrMissingAmountOrOrderID)

	_, err = commands.NewCreatePaymentIntentCommand(id.String(), decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewCreatePaymentIntentCommand("nope", decimal.RequireFromString("1"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreatePaymentIntentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, 7)
	amount := decimal.RequireFromString("79.80")
	cmd, err := commands.NewCreatePaymentIntentCommand(o.ID().String(), amount)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.OrderUoW])
	gateway := new(MockPaymentGateway)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		gateway.On("CreatePaymentIntent", ctx, amount, "brl", map[string]string{"orderId": o.ID().String()}).
			Return(ports.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil).Once(),
	)

	handler := commands.NewCreatePaymentIntentCommandHandler(factory, gateway, "")
	intent, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	gateway.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreatePaymentIntentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentIntentCommand(id.String(), decimal.RequireFromString("10"))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.OrderUoW])
	gateway := new(MockPaymentGateway)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreatePaymentIntentCommandHandler(factory, gateway, "usd")
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntentCommandHandler_Handle_GatewayFailure(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, 7)
	cmd, err := commands.NewCreatePaymentIntentCommand(o.ID().String(), decimal.RequireFromString("10"))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory[commands.OrderUoW])
	gateway := new(MockPaymentGateway)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	gateway.On("CreatePaymentIntent", ctx, mock.Anything, "usd", mock.Anything).
		Return(ports.PaymentIntent{}, errors.New("card_declined")).Once()

	handler := commands.NewCreatePaymentIntentCommandHandler(factory, gateway, "usd")
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
}
