// Package http is the REST surface of the service. Handlers translate requests
// into commands and queries and never touch storage directly.
package http

import (
	"context"
	"log/slog"
	"net/http"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
)

// Use case contracts the server depends on. The concrete command and query
// handlers satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	GetAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	CreateAddressHandler interface {
		Handle(ctx context.Context, cmd commands.CreateAddressCommand) (*delivery.Address, error)
	}
	UpdateAddressHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateAddressCommand) (*delivery.Address, error)
	}
	GetUserAddressesHandler interface {
		Handle(ctx context.Context, query queries.GetUserAddressesQuery) ([]queries.AddressView, error)
	}
	CreateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (*delivery.Delivery, error)
	}
	UpdateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryCommand) (*delivery.Delivery, error)
	}
	GetDeliveryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.GetDeliveryQueryResponse, error)
	}
	PaymentWebhookHandler interface {
		Handle(ctx context.Context, cmd commands.HandlePaymentWebhookCommand) error
	}
	CreatePaymentIntentHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentIntentCommand) (ports.PaymentIntent, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder         CreateOrderHandler
	UpdateOrderStatus   UpdateOrderStatusHandler
	GetAllOrders        GetAllOrdersHandler
	GetOrder            GetOrderHandler
	CreateAddress       CreateAddressHandler
	UpdateAddress       UpdateAddressHandler
	GetUserAddresses    GetUserAddressesHandler
	CreateDelivery      CreateDeliveryHandler
	UpdateDelivery      UpdateDeliveryHandler
	GetDelivery         GetDeliveryHandler
	PaymentWebhook      PaymentWebhookHandler
	CreatePaymentIntent CreatePaymentIntentHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	health   *healthgo.Health
	logger   *slog.Logger
}

func NewServer(handlers Handlers, health *healthgo.Health, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		health:   health,
		logger:   logger.With("component", "http-server"),
	}
}

// Register mounts every route. auth guards everything except the payment
// webhook, the realtime endpoint and the health check. Authenticated requests
// are checked against the embedded OpenAPI document.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc, realtime echo.HandlerFunc) error {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return err
	}
	validate, err := OpenAPIValidator(doc)
	if err != nil {
		return err
	}

	e.GET("/healthz", s.HealthCheck)
	e.POST("/payments/webhook", s.HandlePaymentWebhook)
	if realtime != nil {
		e.GET("/ws", realtime)
	}

	admin := RequireRole(RoleAdmin)
	api := e.Group("", auth, validate)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders, admin)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus, admin)

	api.POST("/delivery/address", s.CreateAddress)
	api.GET("/delivery/address/user", s.GetUserAddresses)
	api.PATCH("/delivery/address/:id", s.UpdateAddress)

	api.POST("/delivery", s.CreateDelivery)
	api.PATCH("/delivery/:id", s.UpdateDelivery)
	api.PATCH("/delivery/:id/status", s.UpdateDeliveryStatus)
	api.GET("/delivery/:id", s.GetDelivery)

	api.POST("/payments/create-payment-intent", s.CreatePaymentIntent)
	return nil
}

// NewEcho builds the echo instance with the shared middleware stack. Request
// logs go through slog; echo's own logger is silenced.
func NewEcho(logger *slog.Logger, serviceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(slogecho.New(logger))
	e.Use(otelecho.Middleware(serviceName,
		otelecho.WithEchoMetricAttributeFn(func(c echo.Context) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("handler.path", c.Path()),
				attribute.String("handler.method", c.Request().Method),
			}
		}),
	))
	return e
}

func (s *Server) HealthCheck(c echo.Context) error {
	if s.health == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": string(healthgo.StatusOK)})
	}
	check := s.health.Measure(c.Request().Context())

	statusCode := http.StatusOK
	if check.Status != healthgo.StatusOK {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, check)
}
