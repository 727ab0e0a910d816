package cmd

import (
	"log/slog"

	httpin "montarota/internal/adapters/in/http"
	"montarota/internal/adapters/out/eventbus"
	"montarota/internal/adapters/out/postgres"
	"montarota/internal/adapters/out/postgres/idempotencyrepo"
	"montarota/internal/adapters/out/rabbitmq"
	"montarota/internal/adapters/out/security"
	"montarota/internal/core/application/usecases/commands"
	"montarota/internal/core/application/usecases/queries"
	"montarota/internal/core/domain/services"
	"montarota/internal/core/ports"
	"montarota/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Events go to the
// broker (or the log when AMQP_URL is unset) and to the live tracking hub.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *eventbus.TrackingHub
	broker     *rabbitmq.Publisher
	hasher     *security.BcryptHasher
	tokens     *security.JWTTokens
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := security.NewJWTTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
		hub:    eventbus.NewTrackingHub(),
		hasher: security.NewBcryptHasher(security.DefaultHashCost),
		tokens: tokens,
	}

	var sink ports.EventPublisher = eventbus.NewLogPublisher(logger)
	if cfg.AMQPURL != "" {
		if root.broker, err = rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger); err != nil {
			return nil, err
		}
		sink = root.broker
	}
	root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, eventbus.NewFanout(sink, root.hub), logger)
	return root, nil
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	if c.broker == nil {
		return nil
	}
	return c.broker.Close()
}

func (c *CompositionRoot) NewEcho() (*echo.Echo, error) {
	server := httpin.NewServer(c.Commands(), c.Queries(), c.hub)
	return httpin.NewEcho(server, httpin.Options{
		Tokens:         c.tokens,
		Idempotency:    idempotencyrepo.NewStore(c.gormDB),
		IdempotencyTTL: c.cfg.IdempotencyTTL,
		GPSRequireAuth: c.cfg.GPSRequireAuth,
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	settlements := c.CreateGenerateWeeklySettlementCommandHandler()
	return jobs.NewJobManager(
		queries.NewListOverdueOrdersQueryHandler(c.gormDB),
		queries.NewListStoresQueryHandler(c.gormDB),
		&settlements,
		c.logger,
	)
}

func (c *CompositionRoot) Commands() httpin.Commands {
	fee := c.cfg.PlatformFee
	return httpin.Commands{
		RegisterUser:             commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, nil),
		Login:                    commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens, nil),
		CreateStore:              commands.NewCreateStoreCommandHandler(c.storeUoWFactory()),
		UpdateStore:              commands.NewUpdateStoreCommandHandler(c.storeUoWFactory()),
		CreateCourier:            commands.NewCreateCourierCommandHandler(c.courierUoWFactory()),
		ChangeCourierStatus:      commands.NewChangeCourierStatusCommandHandler(c.courierUoWFactory(), nil),
		RecordCourierPosition:    commands.NewRecordCourierPositionCommandHandler(c.trackingUoWFactory(), nil),
		CreateOrder:              commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), services.NewConfirmationCodeGenerator(), fee, nil),
		ChangeOrderStatus:        commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), nil),
		ConfirmDelivery:          commands.NewConfirmDeliveryCommandHandler(c.deliveryUoWFactory(), fee, nil),
		AssembleRoute:            commands.NewAssembleRouteCommandHandler(c.routeUoWFactory(), services.NewRouteLinkBuilder(), fee, nil),
		StartRoute:               commands.NewStartRouteCommandHandler(c.routeUoWFactory(), nil),
		CompleteRoute:            commands.NewCompleteRouteCommandHandler(c.routeUoWFactory(), nil),
		GenerateWeeklySettlement: c.CreateGenerateWeeklySettlementCommandHandler(),
		MarkPaymentPaid:          commands.NewMarkPaymentPaidCommandHandler(c.paymentUoWFactory(), nil),
		IngestOcrSlip:            commands.NewIngestOcrSlipCommandHandler(c.ocrUoWFactory(), nil),
	}
}

func (c *CompositionRoot) Queries() httpin.Queries {
	return httpin.Queries{
		ListStores:        queries.NewListStoresQueryHandler(c.gormDB),
		GetStore:          queries.NewGetStoreQueryHandler(c.gormDB),
		ListCouriers:      queries.NewListCouriersQueryHandler(c.gormDB),
		GetCourier:        queries.NewGetCourierQueryHandler(c.gormDB),
		ListOrders:        queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		ListOverdueOrders: queries.NewListOverdueOrdersQueryHandler(c.gormDB),
		ListRoutes:        queries.NewListRoutesQueryHandler(c.gormDB),
		GetRoute:          queries.NewGetRouteQueryHandler(c.gormDB),
		ListPayments:      queries.NewListPaymentsQueryHandler(c.gormDB),
		GetPayment:        queries.NewGetPaymentQueryHandler(c.gormDB),
		AnalyticsSummary:  queries.NewAnalyticsSummaryQueryHandler(c.gormDB, c.cfg.PlatformFee),
		GetCourierTrack:   queries.NewGetCourierTrackQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateGenerateWeeklySettlementCommandHandler() commands.GenerateWeeklySettlementCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateWeeklySettlementCommandHandler(f, services.NewSettlementCalculator(c.cfg.PlatformFee), nil)
}

func (c *CompositionRoot) Migrate() error {
	return postgres.Migrate(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) storeUoWFactory() commands.StoreUoWFactory {
	return FuncStoreUoWFactory(func() commands.StoreUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ocrUoWFactory() commands.OcrUoWFactory {
	return FuncOcrUoWFactory(func() commands.OcrUoW { return c.uowFactory.Create() })
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncStoreUoWFactory func() commands.StoreUoW

func (f FuncStoreUoWFactory) Create() commands.StoreUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOcrUoWFactory func() commands.OcrUoW

func (f FuncOcrUoWFactory) Create() commands.OcrUoW {
	return f()
}
