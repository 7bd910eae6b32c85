package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/testutil"
)

const testSecret = "test-secret"

type fixture struct {
	e                   *echo.Echo
	createOrder         *MockCreateOrderHandler
	updateOrderStatus   *MockUpdateOrderStatusHandler
	getAllOrders        *MockGetAllOrdersHandler
	getOrder            *MockGetOrderHandler
	createDelivery      *MockCreateDeliveryHandler
	updateDelivery      *MockUpdateDeliveryHandler
	paymentWebhook      *MockPaymentWebhookHandler
	createPaymentIntent *MockCreatePaymentIntentHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		createOrder:         new(MockCreateOrderHandler),
		updateOrderStatus:   new(MockUpdateOrderStatusHandler),
		getAllOrders:        new(MockGetAllOrdersHandler),
		getOrder:            new(MockGetOrderHandler),
		createDelivery:      new(MockCreateDeliveryHandler),
		updateDelivery:      new(MockUpdateDeliveryHandler),
		paymentWebhook:      new(MockPaymentWebhookHandler),
		createPaymentIntent: new(MockCreatePaymentIntentHandler),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.e = httpadapter.NewEcho(logger, "pizzeria-test")
	err := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:         f.createOrder,
		UpdateOrderStatus:   f.updateOrderStatus,
		GetAllOrders:        f.getAllOrders,
		GetOrder:            f.getOrder,
		CreateDelivery:      f.createDelivery,
		UpdateDelivery:      f.updateDelivery,
		PaymentWebhook:      f.paymentWebhook,
		CreatePaymentIntent: f.createPaymentIntent,
	}, nil, logger).Register(f.e, httpadapter.JWTAuth(testSecret), nil)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ErrorResponse {
	t.Helper()
	var resp httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func userToken(t *testing.T, id int64) string {
	return testutil.GenerateJWTHS256(t, testSecret, id, httpadapter.RoleUser)
}

func adminToken(t *testing.T) string {
	return testutil.GenerateJWTHS256(t, testSecret, 99, httpadapter.RoleAdmin)
}

func TestAuth(t *testing.T) {
	f := newFixture(t)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, httpadapter.KindUnauthorized, decodeError(t, rec).Kind)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := testutil.GenerateJWTHS256(t, "other", 7, httpadapter.RoleUser)
		rec := f.do(http.MethodGet, "/orders/"+kernel.NewUUID().String(), token, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin route as user", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/orders", userToken(t, 7), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, httpadapter.KindForbidden, decodeError(t, rec).Kind)
		f.getAllOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("admin route as admin", func(t *testing.T) {
		f.getAllOrders.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderView{}, nil).Once()
		rec := f.do(http.MethodGet, "/orders", adminToken(t), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	item, err := order.NewItem(1, "Margherita", 2, decimal.RequireFromString("20"))
	require.NoError(t, err)
	other, err := order.NewItem(3, "Quattro Formaggi", 1, decimal.RequireFromString("30"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), 1, []order.Item{item, other}, time.Now().UTC())
	require.NoError(t, err)

	f.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.UserID() == 1 && len(cmd.Lines()) == 2 && cmd.AddressID() == nil
	})).Return(commands.CreateOrderResult{Order: o}, nil).Once()

	rec := f.do(http.MethodPost, "/orders", userToken(t, 1),
		`{"items":[{"pizzaId":1,"quantity":2},{"pizzaId":3,"quantity":1}]}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp httpadapter.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, o.ID().String(), resp.ID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.True(t, decimal.NewFromInt(70).Equal(resp.Total))
	assert.Len(t, resp.Items, 2)
	f.createOrder.AssertExpectations(t)
}

func TestCreateOrder_ErrorsMapToStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/orders", userToken(t, 1), `{"items":[{"pizzaId":1,"quantity":0}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpadapter.KindBadRequest, decodeError(t, rec).Kind)

	rec = f.do(http.MethodPost, "/orders", userToken(t, 1), `{"items":[{"pizzaId":1,"quantity":1}],"addressId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.createOrder.On("Handle", mock.Anything, mock.Anything).
		Return(commands.CreateOrderResult{}, errs.NewObjectNotFoundErrorWithCause("pizza", []int64{9}, errors.New("one or more pizzas not found"))).Once()
	rec = f.do(http.MethodPost, "/orders", userToken(t, 1), `{"items":[{"pizzaId":9,"quantity":1}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpadapter.KindNotFound, decodeError(t, rec).Kind)
}

func TestGetOrder_RequesterDependsOnRole(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	view := queries.OrderView{ID: id, UserID: 7, Status: "PAID", Total: decimal.NewFromInt(10)}

	f.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID() == id
	})).Return(view, nil).Twice()

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/orders/"+id.String(), userToken(t, 7), "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/orders/"+id.String(), adminToken(t), "").Code)

	f.getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{}, errs.NewAccessDeniedError("order", id)).Once()
	rec := f.do(http.MethodGet, "/orders/"+id.String(), userToken(t, 8), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPatch, "/orders/"+kernel.NewUUID().String()+"/status", adminToken(t), `{"status":"SHIPPED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.updateOrderStatus.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	f.updateOrderStatus.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewInvalidTransitionError("order", "DELIVERED", "PENDING")).Once()

	rec := f.do(http.MethodPatch, "/orders/"+kernel.NewUUID().String()+"/status", adminToken(t), `{"status":"PENDING"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "cannot move from DELIVERED to PENDING")
}

func TestUpdateDeliveryStatus_RejectsUnknownStatusBeforeStorage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPatch, "/delivery/"+kernel.NewUUID().String()+"/status", userToken(t, 1), `{"status":"LOST"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.updateDelivery.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateDelivery_UpstreamFailureHidesDetail(t *testing.T) {
	f := newFixture(t)
	f.createDelivery.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewUpstreamError("geo", errors.New("REQUEST_DENIED: key=secret"))).Once()

	rec := f.do(http.MethodPost, "/delivery", userToken(t, 1),
		`{"orderId":"`+kernel.NewUUID().String()+`","addressId":"`+kernel.NewUUID().String()+`"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, httpadapter.KindInternalServer, resp.Kind)
	assert.NotContains(t, resp.Message, "secret")
}

func TestCreateDelivery_Success(t *testing.T) {
	f := newFixture(t)
	route, err := delivery.NewRoute("10 km", 10000, "15 mins", 900)
	require.NoError(t, err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), delivery.Pending, route, delivery.Schedule{})
	require.NoError(t, err)
	f.createDelivery.On("Handle", mock.Anything, mock.Anything).Return(d, nil).Once()

	rec := f.do(http.MethodPost, "/delivery", userToken(t, 1),
		`{"orderId":"`+d.OrderID().String()+`","addressId":"`+d.AddressID().String()+`"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp httpadapter.DeliveryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10 km", resp.DistanceText)
	assert.Equal(t, "15 mins", resp.DurationText)
}

func TestPaymentWebhook(t *testing.T) {
	t.Run("missing signature", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodPost, "/payments/webhook", "", `{"id":"evt_1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Webhook Error:"), rec.Body.String())
		f.paymentWebhook.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("invalid signature", func(t *testing.T) {
		f := newFixture(t)
		f.paymentWebhook.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewWebhookError(errors.New("signature mismatch"))).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{"id":"evt_1"}`))
		req.Header.Set(httpadapter.SignatureHeader, "t=1,v1=bad")
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Webhook Error: signature mismatch", rec.Body.String())
	})

	t.Run("acknowledged", func(t *testing.T) {
		f := newFixture(t)
		payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`
		f.paymentWebhook.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.HandlePaymentWebhookCommand) bool {
			return string(cmd.Payload()) == payload && cmd.Signature() == "t=1,v1=ok"
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(payload))
		req.Header.Set(httpadapter.SignatureHeader, "t=1,v1=ok")
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"received":true}`, rec.Body.String())
		f.paymentWebhook.AssertExpectations(t)
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	rec := f.do(http.MethodPost, "/payments/create-payment-intent", userToken(t, 1), `{"orderId":"`+orderID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "missing amount or orderId")

	f.createPaymentIntent.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreatePaymentIntentCommand) bool {
		return cmd.OrderID() == orderID && cmd.Amount().Equal(decimal.RequireFromString("85.40"))
	})).Return(ports.PaymentIntent{ID: "pi_1", ClientSecret: "secret_1"}, nil).Once()

	rec = f.do(http.MethodPost, "/payments/create-payment-intent", userToken(t, 1),
		`{"orderId":"`+orderID.String()+`","amount":85.40}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"pi_1","clientSecret":"secret_1"}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/nowhere", userToken(t, 1), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httpadapter.KindNotFound, decodeError(t, rec).Kind)
}

func TestOpenAPIValidation_RejectsMalformedBodiesBeforeHandlers(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/orders", userToken(t, 1), `{"items":[{"pizzaId":"one","quantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, httpadapter.KindBadRequest, resp.Kind)
	assert.Contains(t, resp.Message, "request body has an error")

	rec = f.do(http.MethodPatch, "/delivery/"+kernel.NewUUID().String()+"/status", userToken(t, 1), `{"status":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "request body has an error")

	f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	f.updateDelivery.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestOpenAPIDocument_DescribesEveryAuthenticatedRoute(t *testing.T) {
	f := newFixture(t)
	doc, err := httpadapter.LoadOpenAPI(t.Context())
	require.NoError(t, err)

	public := map[string]bool{"/healthz": true, "/payments/webhook": true, "/ws": true}
	for _, r := range f.e.Routes() {
		if public[r.Path] || strings.Contains(r.Path, "*") {
			continue
		}
		path := strings.ReplaceAll(r.Path, ":id", "{id}")
		item := doc.Paths.Value(path)
		if assert.NotNil(t, item, path) {
			assert.NotNil(t, item.GetOperation(r.Method), "%s %s", r.Method, path)
		}
	}
}
