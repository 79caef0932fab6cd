package cmd

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"engage/internal/adapters/out/billing"
	"engage/internal/adapters/out/fcm"
	"engage/internal/adapters/out/geocode"
	"engage/internal/adapters/out/postgres"
	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
	"engage/internal/jobs"
)

// CompositionRoot wires adapters into use case handlers. All Create*
// methods are cheap; handlers hold no per-request state.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	geocoder      *geocode.Client
	subscriptions *billing.Client
	notifier      ports.Notifier
	deviceTokens  *postgres.GormDeviceTokenStore
	gate          services.VisibilityGate
	logger        *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration. The FCM
// notifier is only constructed when credentials are configured; otherwise
// notifications are logged.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	region := kernel.BoundingBox{
		MinLat: config.RegionMinLat,
		MaxLat: config.RegionMaxLat,
		MinLng: config.RegionMinLng,
		MaxLng: config.RegionMaxLng,
	}

	location, err := time.LoadLocation(config.BusinessTimezone)
	if err != nil {
		return CompositionRoot{}, err
	}

	deviceTokens := postgres.NewGormDeviceTokenStore(gormDB)

	var notifier ports.Notifier = logNotifier{logger: logger}
	if config.FCMCredentialsFile != "" {
		fcmNotifier, err := fcm.NewNotifier(ctx, config.FCMCredentialsFile, deviceTokens)
		if err != nil {
			return CompositionRoot{}, err
		}
		notifier = fcmNotifier
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:      geocode.NewClient(config.GeocoderURL, region),
		subscriptions: billing.NewClient(config.BillingURL),
		notifier:      notifier,
		deviceTokens:  deviceTokens,
		gate:          services.NewVisibilityGate(location),
		logger:        logger,
	}, nil
}

// DeviceTokenStore exposes the push token registry to the HTTP layer.
func (c *CompositionRoot) DeviceTokenStore() *postgres.GormDeviceTokenStore {
	return c.deviceTokens
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowAdapter(), c.geocoder, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uowAdapter(), c.subscriptions, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateProgressOrderCommandHandler() commands.ProgressOrderCommandHandler {
	return commands.NewProgressOrderCommandHandler(c.orderUoWAdapter())
}

func (c *CompositionRoot) CreateRescheduleOrderCommandHandler() commands.RescheduleOrderCommandHandler {
	return commands.NewRescheduleOrderCommandHandler(c.orderUoWAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateFinishOrderCommandHandler() commands.FinishOrderCommandHandler {
	return commands.NewFinishOrderCommandHandler(c.orderUoWAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReviewOrderCommandHandler() commands.ReviewOrderCommandHandler {
	return commands.NewReviewOrderCommandHandler(c.orderUoWAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExtendAcceptDeadlineCommandHandler() commands.ExtendAcceptDeadlineCommandHandler {
	return commands.NewExtendAcceptDeadlineCommandHandler(c.orderUoWAdapter())
}

func (c *CompositionRoot) CreateCancelByCustomerCommandHandler() commands.CancelByCustomerCommandHandler {
	return commands.NewCancelByCustomerCommandHandler(c.orderUoWAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelBySpecialistCommandHandler() commands.CancelBySpecialistCommandHandler {
	return commands.NewCancelBySpecialistCommandHandler(c.uowAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.uowAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	return commands.NewSetAvailabilityCommandHandler(c.specialistUoWAdapter(), c.subscriptions, c.gate)
}

func (c *CompositionRoot) CreateSweepExpiredCommandHandler() commands.SweepExpiredCommandHandler {
	return commands.NewSweepExpiredCommandHandler(c.orderUoWAdapter(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRefreshSearchIndexCommandHandler() commands.RefreshSearchIndexCommandHandler {
	return commands.NewRefreshSearchIndexCommandHandler(c.specialistUoWAdapter(), c.subscriptions, c.gate, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	sweeper := c.CreateSweepExpiredCommandHandler()
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository(), sweeper)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchSpecialistsQueryHandler() queries.SearchSpecialistsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewSearchSpecialistsQueryHandler(uow.SpecialistRepository(), uow.CatalogRepository())
}

func (c *CompositionRoot) CreateGetSpecialistQueryHandler() queries.GetSpecialistQueryHandler {
	return queries.NewGetSpecialistQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepExpiredCommandHandler(),
		c.CreateRefreshSearchIndexCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) uowAdapter() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWAdapter() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) specialistUoWAdapter() commands.SpecialistUoWFactory {
	return FuncSpecialistUoWFactory(func() commands.SpecialistUoW {
		return c.uowFactory.Create()
	})
}

// logNotifier stands in for FCM when no credentials are configured.
// Notification rows still land in the store for idempotency tracking.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Send(ctx context.Context, note *notification.Notification) error {
	n.logger.InfoContext(ctx, "Notification (push disabled)",
		"recipient", note.RecipientID().String(),
		"kind", string(note.Kind()),
		"title", note.Title())
	return nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSpecialistUoWFactory func() commands.SpecialistUoW

func (f FuncSpecialistUoWFactory) Create() commands.SpecialistUoW {
	return f()
}
