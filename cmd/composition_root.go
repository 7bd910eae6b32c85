package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/nats-io/nats.go"
	"gorm.io/gorm"

	httpadapter "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/in/ws"
	"pizzeria/internal/adapters/out/events"
	"pizzeria/internal/adapters/out/geo"
	"pizzeria/internal/adapters/out/natsbus"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/webhookrepo"
	"pizzeria/internal/adapters/out/realtime"
	"pizzeria/internal/adapters/out/stripe"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"
)

const healthCheckTimeout = 2 * time.Second

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	natsConn   *nats.Conn
	logger     *slog.Logger
	hub        *realtime.Hub
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     *webhookrepo.GormWebhookEventLedger
	gateway    ports.PaymentGateway
	geo        ports.GeoClient
	origin     kernel.Location
}

// NewCompositionRoot builds the shared adapters. natsConn may be nil, in which
// case status events only reach WebSocket subscribers.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, natsConn *nats.Conn, logger *slog.Logger) (*CompositionRoot, error) {
	hub, err := realtime.NewHub(realtime.DefaultBufferSize, logger)
	if err != nil {
		return nil, err
	}

	publishers := []ports.EventPublisher{hub}
	if natsConn != nil {
		natsPublisher, err := natsbus.NewPublisher(natsConn, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, natsPublisher)
	}
	dispatcher, err := events.NewDispatcher(logger, publishers...)
	if err != nil {
		return nil, err
	}

	gateway, err := stripe.NewGateway(stripe.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	geoClient, err := geo.NewDistanceMatrixClient(nil, cfg.GeoBaseURL, cfg.GeoAPIKey, logger)
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewLocation(cfg.GeoOriginLat, cfg.GeoOriginLng)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		natsConn:   natsConn,
		logger:     logger,
		hub:        hub,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, dispatcher, logger),
		ledger:     webhookrepo.NewGormWebhookEventLedger(gormDB),
		gateway:    gateway,
		geo:        geoClient,
		origin:     origin,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateAddressCommandHandler() commands.CreateAddressCommandHandler {
	return commands.NewCreateAddressCommandHandler(c.addressUoWFactory())
}

func (c *CompositionRoot) CreateUpdateAddressCommandHandler() commands.UpdateAddressCommandHandler {
	return commands.NewUpdateAddressCommandHandler(c.addressUoWFactory())
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() (commands.CreateDeliveryCommandHandler, error) {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory(), c.geo, c.origin, c.cfg.GeoTimeout)
}

func (c *CompositionRoot) CreateUpdateDeliveryCommandHandler() commands.UpdateDeliveryCommandHandler {
	return commands.NewUpdateDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateHandlePaymentWebhookCommandHandler() commands.HandlePaymentWebhookCommandHandler {
	updater := c.CreateUpdateOrderStatusCommandHandler()
	return commands.NewHandlePaymentWebhookCommandHandler(c.gateway, c.ledger, &updater, c.logger)
}

func (c *CompositionRoot) CreateCreatePaymentIntentCommandHandler() commands.CreatePaymentIntentCommandHandler {
	return commands.NewCreatePaymentIntentCommandHandler(c.orderUoWFactory(), c.gateway, c.cfg.PaymentCurrency)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserAddressesQueryHandler() queries.GetUserAddressesQueryHandler {
	return queries.NewGetUserAddressesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

// HTTPHandlers builds every use case served over HTTP.
func (c *CompositionRoot) HTTPHandlers() (httpadapter.Handlers, error) {
	createDelivery, err := c.CreateCreateDeliveryCommandHandler()
	if err != nil {
		return httpadapter.Handlers{}, err
	}

	createOrder := c.CreateCreateOrderCommandHandler()
	updateOrderStatus := c.CreateUpdateOrderStatusCommandHandler()
	createAddress := c.CreateCreateAddressCommandHandler()
	updateAddress := c.CreateUpdateAddressCommandHandler()
	updateDelivery := c.CreateUpdateDeliveryCommandHandler()
	paymentWebhook := c.CreateHandlePaymentWebhookCommandHandler()
	createPaymentIntent := c.CreateCreatePaymentIntentCommandHandler()

	return httpadapter.Handlers{
		CreateOrder:         &createOrder,
		UpdateOrderStatus:   &updateOrderStatus,
		GetAllOrders:        c.CreateGetAllOrdersQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		CreateAddress:       &createAddress,
		UpdateAddress:       &updateAddress,
		GetUserAddresses:    c.CreateGetUserAddressesQueryHandler(),
		CreateDelivery:      &createDelivery,
		UpdateDelivery:      &updateDelivery,
		GetDelivery:         c.CreateGetDeliveryQueryHandler(),
		PaymentWebhook:      &paymentWebhook,
		CreatePaymentIntent: &createPaymentIntent,
	}, nil
}

func (c *CompositionRoot) CreateRealtimeHandler() *ws.Handler {
	return ws.NewHandler(c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	retention, err := jobs.NewWebhookLedgerRetentionJob(c.ledger, c.cfg.WebhookLedgerRetention, jobs.DefaultRetentionSchedule, c.logger)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(c.logger, retention), nil
}

// CreateHealth checks the database and, when configured, the NATS connection.
func (c *CompositionRoot) CreateHealth() (*healthgo.Health, error) {
	checks := []healthgo.Config{{
		Name:    "postgres",
		Timeout: healthCheckTimeout,
		Check: func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if c.natsConn != nil {
		checks = append(checks, healthgo.Config{
			Name:      "nats",
			Timeout:   healthCheckTimeout,
			SkipOnErr: true,
			Check: func(context.Context) error {
				if !c.natsConn.IsConnected() {
					return errors.New("NATS connection is not active")
				}
				return nil
			},
		})
	}

	return healthgo.New(
		healthgo.WithComponent(healthgo.Component{Name: c.cfg.AppName, Version: c.cfg.AppVersion}),
		healthgo.WithChecks(checks...),
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) addressUoWFactory() commands.AddressUoWFactory {
	return FuncAddressUoWFactory(func() commands.AddressUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
