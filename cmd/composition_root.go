package cmd

import (
	"log/slog"

	adapterhttp "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/redisfeed"
	outamqp "fooddelivery/internal/adapters/out/amqp"
	"fooddelivery/internal/adapters/out/osrm"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/core/application/feed"
	"fooddelivery/internal/core/application/session"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to the tracking core. Shared pieces (the
// position feed, the session manager) are built once; handlers are built per
// request for stateless components.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB      *gorm.DB
	amqpChannel *amqp.Channel
	redisClient *redis.Client

	uowFactory     *postgres.GormUnitOfWorkFactory
	positionFeed   *feed.Feed
	sessionManager *session.Manager
}

// NewCompositionRoot builds the object graph. Fails fast if any adapter
// cannot be constructed; there is no point starting half an application.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	amqpChannel *amqp.Channel,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:      config,
		logger:      logger,
		gormDB:      gormDB,
		amqpChannel: amqpChannel,
		redisClient: redisClient,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	root.positionFeed = feed.New(logger)

	notifier, err := outamqp.NewNotifier(amqpChannel)
	if err != nil {
		return nil, err
	}

	routeClient, err := osrm.NewClient(config.RoutingBaseURL)
	if err != nil {
		return nil, err
	}

	root.sessionManager, err = session.NewManager(
		root.CreateOrderBackend(),
		notifier,
		routeClient,
		root.CreateRestaurantDirectory(),
		root.positionFeed,
		config.RouteToleranceMeters,
		logger,
	)
	if err != nil {
		return nil, err
	}

	return root, nil
}

// CreateOrderBackend returns the transactional order store.
func (c *CompositionRoot) CreateOrderBackend() ports.OrderBackend {
	return postgres.NewGormOrderBackend(c.uowFactory)
}

// CreateRestaurantDirectory returns the restaurant location lookup.
func (c *CompositionRoot) CreateRestaurantDirectory() ports.RestaurantDirectory {
	return restaurantrepo.NewGormRestaurantDirectory(c.gormDB)
}

// SessionManager returns the shared session manager.
func (c *CompositionRoot) SessionManager() *session.Manager {
	return c.sessionManager
}

// PositionFeed returns the shared position feed.
func (c *CompositionRoot) PositionFeed() *feed.Feed {
	return c.positionFeed
}

// CreateGetDriverOrdersQueryHandler returns the driver order list handler.
func (c *CompositionRoot) CreateGetDriverOrdersQueryHandler() queries.GetDriverOrdersQueryHandler {
	return queries.NewGetDriverOrdersQueryHandler(c.gormDB)
}

// CreateGetOrderHistoryQueryHandler returns the status history handler.
func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer returns the REST surface over the session manager.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.sessionManager,
		c.CreateGetDriverOrdersQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
	)
}

// CreatePositionConsumer returns the Redis position consumer.
func (c *CompositionRoot) CreatePositionConsumer() (*redisfeed.Consumer, error) {
	return redisfeed.NewConsumer(
		c.redisClient,
		c.config.RedisPositionChannel,
		c.positionFeed,
		c.logger,
	)
}

// CreateJobManager returns the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.sessionManager, c.logger)
}
